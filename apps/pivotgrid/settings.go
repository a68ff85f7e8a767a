// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/settings.go
// Summary: Reads brush, layout and colour settings from the config store.

package pivotgrid

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/apps/pivotgrid/brush"
	"github.com/framegrace/texelgrid/apps/pivotgrid/sheet"
	"github.com/framegrace/texelgrid/config"
)

// AppName is the config store name of the pivot grid app.
const AppName = "pivotgrid"

// Config sections.
const (
	SectionBrush    = "pivotgrid.brush"
	SectionLayout   = "pivotgrid.layout"
	SectionSnapshot = "pivotgrid.snapshot"
)

// TerminalBrush is the engine configuration scaled to terminal cells: one
// column per horizontal step and a third of a short page per vertical step.
func TerminalBrush() brush.Config {
	cfg := brush.DefaultConfig()
	cfg.StepX = 12
	cfg.StepY = 3
	cfg.MinMoveDistance = 1
	cfg.EdgeMargin = 1
	return cfg
}

// BrushConfig reads engine settings from a section. Missing keys keep the
// values of base.
func BrushConfig(cfg config.Config, section string, base brush.Config) brush.Config {
	return brush.Config{
		ThrottleInterval: cfg.GetMillis(section, "throttle_ms", base.ThrottleInterval),
		ScrollInterval:   cfg.GetMillis(section, "scroll_interval_ms", base.ScrollInterval),
		StepX:            cfg.GetFloat(section, "scroll_step_x", base.StepX),
		StepY:            cfg.GetFloat(section, "scroll_step_y", base.StepY),
		MinMoveDistance:  cfg.GetFloat(section, "min_move_distance", base.MinMoveDistance),
		EdgeMargin:       cfg.GetFloat(section, "edge_margin", base.EdgeMargin),
		Verbose:          cfg.GetBool(AppName, "verbose", base.Verbose),
	}
}

// LayoutConfig reads grid geometry from a section on top of base.
func LayoutConfig(cfg config.Config, section string, base sheet.Layout) sheet.Layout {
	base.Width = cfg.GetFloat(section, "width", base.Width)
	base.Height = cfg.GetFloat(section, "height", base.Height)
	base.RowHeaderWidth = cfg.GetFloat(section, "row_header_width", base.RowHeaderWidth)
	base.ColHeaderHeight = cfg.GetFloat(section, "col_header_height", base.ColHeaderHeight)
	base.ColWidth = cfg.GetFloat(section, "col_width", base.ColWidth)
	base.RowHeight = cfg.GetFloat(section, "row_height", base.RowHeight)
	return base
}

// Palette holds the styles used to draw the grid in a terminal.
type Palette struct {
	Background tcell.Style
	Header     tcell.Style
	Cell       tcell.Style
	Empty      tcell.Style
	Hover      tcell.Style
	Prepare    tcell.Style
	Selected   tcell.Style
	Mask       tcell.Style
	Status     tcell.Style
	Scrollbar  tcell.Style
}

// Colors returns the raw colour table from the system config.
func Colors(sys config.Config) map[string]tcell.Color {
	keys := []string{
		"background", "header_bg", "header_fg", "cell_fg", "empty_fg", "hover_bg",
		"prepare_bg", "selected_bg", "selected_fg", "mask_bg", "status_bg",
		"scrollbar_fg", "grid_line",
	}
	out := make(map[string]tcell.Color, len(keys))
	for _, k := range keys {
		out[k] = tcell.GetColor(sys.GetString("colors", k, ""))
	}
	return out
}

// NewPalette builds terminal styles from the system colour table.
func NewPalette(sys config.Config) Palette {
	c := Colors(sys)
	base := tcell.StyleDefault.Background(c["background"]).Foreground(c["cell_fg"])
	return Palette{
		Background: base,
		Header:     tcell.StyleDefault.Background(c["header_bg"]).Foreground(c["header_fg"]).Bold(true),
		Cell:       base,
		Empty:      base.Foreground(c["empty_fg"]),
		Hover:      base.Background(c["hover_bg"]),
		Prepare:    base.Background(c["prepare_bg"]),
		Selected:   tcell.StyleDefault.Background(c["selected_bg"]).Foreground(c["selected_fg"]),
		Mask:       base.Background(c["mask_bg"]),
		Status:     tcell.StyleDefault.Background(c["status_bg"]).Foreground(c["header_fg"]),
		Scrollbar:  base.Foreground(c["scrollbar_fg"]),
	}
}
