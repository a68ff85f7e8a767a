// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/replay/replay.go
// Summary: Pointer gesture scripts and their playback against a brush engine.
//
// A script is one command per line:
//
//	down X Y     press the primary button
//	move X Y     move the pointer
//	up [X Y]     release, at the last position if omitted
//	menu         open the context menu
//	wait DUR     let time pass (Go duration, e.g. 300ms)
//
// Blank lines and lines starting with '#' are ignored.

package replay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/framegrace/texelgrid/apps/pivotgrid/brush"
)

// Op is a script command.
type Op int

const (
	OpDown Op = iota
	OpMove
	OpUp
	OpMenu
	OpWait
)

func (o Op) String() string {
	switch o {
	case OpDown:
		return "down"
	case OpMove:
		return "move"
	case OpUp:
		return "up"
	case OpMenu:
		return "menu"
	case OpWait:
		return "wait"
	default:
		return "unknown"
	}
}

// Step is one parsed command.
type Step struct {
	Op    Op
	Point brush.Point
	// HasPoint is false for an "up" without coordinates.
	HasPoint bool
	Wait     time.Duration
	Line     int
}

// ParseError reports a malformed script line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads a script.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		step, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: n, Text: line, Err: err}
		}
		step.Line = n
		steps = append(steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

// ParseFile reads a script from path.
func ParseFile(path string) ([]Step, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func parseLine(line string) (Step, error) {
	fields := strings.Fields(line)
	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "down", "move":
		p, err := parsePoint(args)
		if err != nil {
			return Step{}, err
		}
		op := OpDown
		if strings.EqualFold(fields[0], "move") {
			op = OpMove
		}
		return Step{Op: op, Point: p, HasPoint: true}, nil
	case "up":
		if len(args) == 0 {
			return Step{Op: OpUp}, nil
		}
		p, err := parsePoint(args)
		if err != nil {
			return Step{}, err
		}
		return Step{Op: OpUp, Point: p, HasPoint: true}, nil
	case "menu":
		if len(args) != 0 {
			return Step{}, fmt.Errorf("menu takes no arguments")
		}
		return Step{Op: OpMenu}, nil
	case "wait":
		if len(args) != 1 {
			return Step{}, fmt.Errorf("wait takes one duration")
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return Step{}, err
		}
		if d < 0 {
			return Step{}, fmt.Errorf("negative duration %v", d)
		}
		return Step{Op: OpWait, Wait: d}, nil
	default:
		return Step{}, fmt.Errorf("unknown command %q", fields[0])
	}
}

func parsePoint(args []string) (brush.Point, error) {
	if len(args) != 2 {
		return brush.Point{}, fmt.Errorf("expected X Y, got %d values", len(args))
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return brush.Point{}, fmt.Errorf("bad x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return brush.Point{}, fmt.Errorf("bad y: %w", err)
	}
	return brush.Point{X: x, Y: y}, nil
}

// events converts steps into engine events, calling wait between them.
func events(steps []Step, emit func(brush.Event) error, wait func(time.Duration) error) error {
	var last brush.Point
	for _, s := range steps {
		if s.HasPoint {
			last = s.Point
		}
		var err error
		switch s.Op {
		case OpDown:
			err = emit(brush.PointerDown{Point: last, Button: brush.ButtonPrimary})
		case OpMove:
			err = emit(brush.PointerMove{Point: last})
		case OpUp:
			err = emit(brush.PointerUp{Point: last, Button: brush.ButtonPrimary})
		case OpMenu:
			err = emit(brush.ContextMenu{})
		case OpWait:
			err = wait(s.Wait)
		}
		if err != nil {
			return fmt.Errorf("line %d (%s): %w", s.Line, s.Op, err)
		}
	}
	return nil
}

// Virtual plays steps in virtual time. The engine must run on clock; waits
// advance it, firing auto-scroll ticks and trailing throttle deltas inline.
func Virtual(e *brush.Engine, clock *brush.ManualClock, steps []Step) error {
	return events(steps,
		func(ev brush.Event) error {
			e.Handle(ev)
			return nil
		},
		func(d time.Duration) error {
			clock.Advance(d)
			return nil
		})
}

// ErrLoopStopped is returned when the loop exits during playback.
var ErrLoopStopped = errors.New("replay: event loop stopped")

// Live posts steps to a running loop in wall-clock time and returns once the
// loop has processed the last one.
func Live(ctx context.Context, loop *brush.Loop, steps []Step) error {
	err := events(steps,
		func(ev brush.Event) error {
			if !loop.Post(ev) {
				return ErrLoopStopped
			}
			return nil
		},
		func(d time.Duration) error {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
				return nil
			}
		})
	if err != nil {
		return err
	}
	if !loop.Do(func(*brush.Engine) {}) {
		return ErrLoopStopped
	}
	return nil
}
