// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/sheet/layout.go
// Summary: Grid geometry in canvas units.

package sheet

// Layout describes the canvas geometry. Units are whatever the host draws in:
// terminal cells for the TUI, pixels for PNG snapshots.
type Layout struct {
	Width           float64
	Height          float64
	RowHeaderWidth  float64
	ColHeaderHeight float64
	ColWidth        float64
	RowHeight       float64
	// ScrollbarThickness is the width of the vertical scrollbar drawn on the
	// right edge of the panel. There is no horizontal bar.
	ScrollbarThickness float64
}

// TerminalLayout is the default geometry for a terminal, one unit per cell.
func TerminalLayout() Layout {
	return Layout{
		Width:              80,
		Height:             24,
		RowHeaderWidth:     16,
		ColHeaderHeight:    2,
		ColWidth:           12,
		RowHeight:          1,
		ScrollbarThickness: 1,
	}
}

// PixelLayout is the default geometry for raster snapshots.
func PixelLayout() Layout {
	return Layout{
		Width:              800,
		Height:             480,
		RowHeaderWidth:     140,
		ColHeaderHeight:    48,
		ColWidth:           100,
		RowHeight:          24,
		ScrollbarThickness: 8,
	}
}

func (l Layout) withDefaults(def Layout) Layout {
	if l.Width <= 0 {
		l.Width = def.Width
	}
	if l.Height <= 0 {
		l.Height = def.Height
	}
	if l.RowHeaderWidth < 0 {
		l.RowHeaderWidth = def.RowHeaderWidth
	}
	if l.ColHeaderHeight < 0 {
		l.ColHeaderHeight = def.ColHeaderHeight
	}
	if l.ColWidth <= 0 {
		l.ColWidth = def.ColWidth
	}
	if l.RowHeight <= 0 {
		l.RowHeight = def.RowHeight
	}
	if l.ScrollbarThickness < 0 {
		l.ScrollbarThickness = def.ScrollbarThickness
	}
	return l
}

// viewWidth is the width of the visible data area excluding the scrollbar.
func (l Layout) viewWidth() float64 {
	w := l.Width - l.RowHeaderWidth - l.ScrollbarThickness
	if w < 0 {
		return 0
	}
	return w
}

func (l Layout) viewHeight() float64 {
	h := l.Height - l.ColHeaderHeight
	if h < 0 {
		return 0
	}
	return h
}
