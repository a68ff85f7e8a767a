// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelgrid/render.go
// Summary: "render" command: replays a gesture script and writes a PNG snapshot.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/framegrace/texelgrid/apps/pivotgrid"
	"github.com/framegrace/texelgrid/apps/pivotgrid/brush"
	"github.com/framegrace/texelgrid/apps/pivotgrid/replay"
	"github.com/framegrace/texelgrid/apps/pivotgrid/sheet"
	"github.com/framegrace/texelgrid/apps/pivotgrid/snapshot"
	"github.com/framegrace/texelgrid/config"
)

type renderFlags struct {
	script   string
	out      string
	width    float64
	height   float64
	fontSize float64
	live     bool
}

func newRenderCmd(src *sourceFlags) *cobra.Command {
	var rf renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Replay a gesture script and save the grid as PNG",
		Long: `render replays a pointer script against the grid in pixel units and
writes the final frame. Script commands, one per line:

  down X Y | move X Y | up [X Y] | menu | wait DURATION

Waits run in virtual time unless --live is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			closer, err := setupLogging(src, false)
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}
			p, _, err := buildPivot(src, cmd.InOrStdin())
			if err != nil {
				return err
			}
			var steps []replay.Step
			if rf.script != "" {
				if steps, err = replay.ParseFile(rf.script); err != nil {
					return err
				}
			}
			return renderSnapshot(cmd.Context(), cmd.OutOrStdout(), p, steps, appConfig(src), config.System(), rf)
		},
	}
	f := cmd.Flags()
	f.StringVar(&rf.script, "script", "", "gesture script to replay")
	f.StringVarP(&rf.out, "out", "o", "texelgrid.png", "PNG output path")
	f.Float64Var(&rf.width, "width", 0, "canvas width in pixels (default from config)")
	f.Float64Var(&rf.height, "height", 0, "canvas height in pixels (default from config)")
	f.Float64Var(&rf.fontSize, "font-size", 12, "text size in points")
	f.BoolVar(&rf.live, "live", false, "replay in wall-clock time through the event loop")
	return cmd
}

func renderSnapshot(ctx context.Context, out io.Writer, p *sheet.Pivot, steps []replay.Step, appCfg, sys config.Config, rf renderFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	layout := pivotgrid.LayoutConfig(appCfg, pivotgrid.SectionSnapshot, sheet.PixelLayout())
	if rf.width > 0 {
		layout.Width = rf.width
	}
	if rf.height > 0 {
		layout.Height = rf.height
	}
	s := sheet.New(p, layout)
	bcfg := pivotgrid.BrushConfig(appCfg, pivotgrid.SectionSnapshot, brush.DefaultConfig())

	var engine *brush.Engine
	if rf.live {
		engine = brush.NewEngine(s, bcfg)
		loop := brush.NewLoop(engine, 0)
		loopCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() { done <- loop.Run(loopCtx) }()
		err := replay.Live(ctx, loop, steps)
		cancel()
		<-done
		if err != nil {
			return err
		}
	} else {
		clock := brush.NewManualClock(time.Now())
		engine = brush.NewEngine(s, bcfg, brush.WithClock(clock))
		if err := replay.Virtual(engine, clock, steps); err != nil {
			return err
		}
	}

	if err := snapshot.SavePNG(rf.out, s, snapshot.Options{
		Colors:   pivotgrid.Colors(sys),
		FontSize: rf.fontSize,
	}); err != nil {
		return err
	}

	fmt.Fprintf(out, "wrote %s (%gx%g)\n", rf.out, layout.Width, layout.Height)
	if sel := engine.Selection(); len(sel) > 0 {
		r := engine.SelectionRange()
		fmt.Fprintf(out, "selected %d cells: rows %d-%d, columns %d-%d\n",
			len(sel), r.Start.RowIndex, r.End.RowIndex, r.Start.ColIndex, r.End.ColIndex)
	}
	if t, ok := s.Tooltip(); ok {
		fmt.Fprintln(out, t.String())
	}
	return nil
}
