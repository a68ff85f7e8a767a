// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/brush/engine.go
// Summary: Effect executor, throttle barrier and auto-scroll timer ownership.

package brush

import (
	"log"
	"sync"

	"golang.org/x/time/rate"
)

// Engine drives a Session through Step and applies the resulting effects to
// the sheet. Handle and Reset are serialized, so wall-clock timer callbacks
// never interleave with pointer events. The sheet itself is still touched
// from whichever goroutine handles the event; hosts that share the sheet with
// a renderer install a poster (WithPoster or NewLoop) that hands timer events
// to their own goroutine. Accessors are unlocked and meant for that goroutine
// or for listeners running inside Handle.
type Engine struct {
	mu sync.Mutex

	sheet   Sheet
	mask    Mask
	cfg     Config
	clock   Clock
	limiter *rate.Limiter
	post    func(Event)

	session Session

	// timer is the single live auto-scroll timer; gen invalidates ticks that
	// were already posted when it was cancelled.
	timer Timer
	gen   uint64

	// trailing holds the latest delta that arrived inside a throttle window.
	trailing      Timer
	trailingDelta Point
	trailingGen   uint64
	reservation   *rate.Reservation

	selection []SelectedCell
	lastRange BrushRange
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithMask sets the prepare-select overlay. A sheet that implements Mask is
// used automatically.
func WithMask(m Mask) Option {
	return func(e *Engine) { e.mask = m }
}

// WithPoster routes timer events through fn. Without it, timer callbacks call
// Handle on the clock's goroutine.
func WithPoster(fn func(Event)) Option {
	return func(e *Engine) { e.post = fn }
}

// NewEngine creates an engine bound to sheet. Zero config values get defaults.
func NewEngine(sheet Sheet, cfg Config, opts ...Option) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		sheet: sheet,
		cfg:   cfg,
		clock: SystemClock{},
	}
	if m, ok := sheet.(Mask); ok {
		e.mask = m
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.post == nil {
		e.post = e.Handle
	}
	e.limiter = rate.NewLimiter(rate.Every(cfg.ThrottleInterval), 1)
	return e
}

// SetPoster changes how timer callbacks deliver events; nil restores the
// default of calling Handle.
func (e *Engine) SetPoster(fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if fn == nil {
		fn = e.Handle
	}
	e.post = fn
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Session returns a copy of the current drag session.
func (e *Engine) Session() Session {
	return e.session
}

// Stage returns the current gesture stage.
func (e *Engine) Stage() Stage {
	return e.session.Stage
}

// Range returns the normalized range of the current gesture.
func (e *Engine) Range() BrushRange {
	return Range(e.session.Start, e.session.End, e.sheet.ScrollOffset())
}

// Selection returns the cells of the last committed selection.
func (e *Engine) Selection() []SelectedCell {
	return e.selection
}

// SelectionRange returns the range of the last committed selection.
func (e *Engine) SelectionRange() BrushRange {
	return e.lastRange
}

// AutoScrollActive reports whether an auto-scroll timer is live.
func (e *Engine) AutoScrollActive() bool {
	return e.timer != nil
}

// ThrottlePending reports whether a trailing delta is waiting in the throttle.
func (e *Engine) ThrottlePending() bool {
	return e.trailing != nil
}

// Handle processes one event to completion.
func (e *Engine) Handle(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handle(ev)
}

// handle is Handle with e.mu held; effects that feed events back call it.
func (e *Engine) handle(ev Event) {
	if tick, ok := ev.(ScrollTick); ok && tick.Gen != 0 {
		if tick.Gen != e.gen || e.timer == nil {
			if e.cfg.Verbose {
				log.Printf("Brush: dropped stale scroll tick gen=%d (live=%d)", tick.Gen, e.gen)
			}
			return
		}
		e.timer = e.clock.AfterFunc(e.cfg.ScrollInterval, e.tickFunc(tick.Gen))
	}
	if fire, ok := ev.(throttleFire); ok {
		if fire.gen != e.trailingGen || e.trailing == nil {
			return
		}
		e.trailing = nil
		e.reservation = nil
		e.handle(AutoScroll{Delta: e.trailingDelta})
		return
	}

	next, effects := Step(e.session, ev, e.sheet, e.cfg)
	e.session = next
	for _, eff := range effects {
		e.apply(eff)
	}
}

// Reset abandons any gesture in progress. Call when the sheet is disposed.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelAutoScroll()
	e.cancelThrottle()
	if e.mask != nil {
		e.mask.Hide()
	}
	e.session = Session{}
}

func (e *Engine) apply(eff Effect) {
	switch x := eff.(type) {
	case AddIntercept:
		e.sheet.AddIntercept(x.Kind)
	case RemoveIntercept:
		e.sheet.RemoveIntercept(x.Kind)
	case ClearStyle:
		e.sheet.ClearStyle()
	case SetHighlight:
		e.sheet.SetHighlight(x.State)
	case PrepareMask:
		if e.mask != nil {
			e.mask.Prepare()
		}
	case ShowMask:
		if e.mask != nil {
			e.mask.Show(x.Rect)
		}
	case HideMask:
		if e.mask != nil {
			e.mask.Hide()
		}
	case CancelAutoScroll:
		e.cancelAutoScroll()
	case ArmAutoScroll:
		e.armAutoScroll()
	case CancelThrottle:
		e.cancelThrottle()
	case RequestAutoScroll:
		e.throttle(x.Delta)
	case SetScrollOffset:
		e.sheet.SetScrollOffset(x.Offset, x.Animate)
	case Emit:
		e.sheet.Emit(x.Name, x.Cells)
	case ShowTooltip:
		e.sheet.ShowTooltip(x.Cells)
	case Commit:
		e.selection = x.Selection
		e.lastRange = x.Range
		if e.cfg.Verbose {
			log.Printf("Brush: selected rows %d-%d cols %d-%d (%d cells)",
				x.Range.Start.RowIndex, x.Range.End.RowIndex,
				x.Range.Start.ColIndex, x.Range.End.ColIndex, len(x.Selection))
		}
	case Follow:
		e.handle(x.Event)
	default:
		log.Printf("Brush: unknown effect %T", eff)
	}
}

// armAutoScroll starts a fresh repeating timer. The previous one, if any, is
// cancelled first so at most one is ever live.
func (e *Engine) armAutoScroll() {
	e.cancelAutoScroll()
	e.gen++
	e.timer = e.clock.AfterFunc(e.cfg.ScrollInterval, e.tickFunc(e.gen))
}

func (e *Engine) cancelAutoScroll() {
	if e.timer == nil {
		return
	}
	e.timer.Stop()
	e.timer = nil
	e.gen++
}

// throttleFire delivers the trailing delta at the end of a throttle window.
type throttleFire struct{ gen uint64 }

func (throttleFire) isEvent() {}

// throttle lets the first delta of a window through immediately. Later deltas
// in the same window replace each other; only the latest is delivered when
// the window closes.
func (e *Engine) throttle(delta Point) {
	if e.trailing != nil {
		e.trailingDelta = delta
		return
	}
	now := e.clock.Now()
	if e.limiter.AllowN(now, 1) {
		e.handle(AutoScroll{Delta: delta})
		return
	}
	r := e.limiter.ReserveN(now, 1)
	if !r.OK() {
		return
	}
	e.reservation = r
	e.trailingDelta = delta
	e.trailingGen++
	gen := e.trailingGen
	post := e.post
	e.trailing = e.clock.AfterFunc(r.DelayFrom(now), func() { post(throttleFire{gen: gen}) })
}

func (e *Engine) cancelThrottle() {
	if e.trailing == nil {
		return
	}
	e.trailing.Stop()
	e.trailing = nil
	e.trailingGen++
	if e.reservation != nil {
		e.reservation.CancelAt(e.clock.Now())
		e.reservation = nil
	}
}

func (e *Engine) tickFunc(gen uint64) func() {
	post := e.post
	return func() { post(ScrollTick{Gen: gen}) }
}
