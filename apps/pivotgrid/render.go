// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/render.go
// Summary: Draws a sheet frame into a terminal cell buffer.

package pivotgrid

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelgrid/apps/pivotgrid/brush"
	"github.com/framegrace/texelgrid/apps/pivotgrid/sheet"
	"github.com/framegrace/texelgrid/internal/devshell"
)

// canvas is a fixed-size cell buffer with clipped writes.
type canvas struct {
	cells [][]devshell.Cell
	w, h  int
	// ox, oy offset every cell written through set and restyle.
	ox, oy int
}

func newCanvas(w, h int, style tcell.Style) *canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &canvas{cells: make([][]devshell.Cell, h), w: w, h: h}
	for y := range c.cells {
		row := make([]devshell.Cell, w)
		for x := range row {
			row[x] = devshell.Cell{Ch: ' ', Style: style}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) set(x, y int, ch rune, style tcell.Style) {
	x, y = x+c.ox, y+c.oy
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = devshell.Cell{Ch: ch, Style: style}
}

func (c *canvas) fill(r rect, style tcell.Style) {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			c.set(x, y, ' ', style)
		}
	}
}

// restyle keeps the runes in r and replaces their background.
func (c *canvas) restyle(r rect, bg tcell.Color) {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			sx, sy := x+c.ox, y+c.oy
			if sx < 0 || sy < 0 || sx >= c.w || sy >= c.h {
				continue
			}
			c.cells[sy][sx].Style = c.cells[sy][sx].Style.Background(bg)
		}
	}
}

// text writes s starting at (x, y), truncated to width columns. Wide runes
// occupy two cells; the second is left blank.
func (c *canvas) text(x, y, width int, s string, style tcell.Style, alignRight bool) {
	if width <= 0 {
		return
	}
	s = runewidth.Truncate(s, width, "…")
	if alignRight {
		s = runewidth.FillLeft(s, width)
	}
	col := x
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		c.set(col, y, r, style)
		if rw == 2 {
			c.set(col+1, y, ' ', style)
		}
		col += rw
	}
}

type rect struct{ x, y, w, h int }

func toRect(r brush.Rect) rect {
	x0 := int(math.Floor(r.X))
	y0 := int(math.Floor(r.Y))
	x1 := int(math.Ceil(r.X + r.Width))
	y1 := int(math.Ceil(r.Y + r.Height))
	return rect{x: x0, y: y0, w: x1 - x0, h: y1 - y0}
}

// renderFrame draws f into a cols x rows buffer. The first row holds the
// title, the last row is the status line and the grid starts at
// (gridLeft, gridTop).
func renderFrame(f sheet.Frame, pal Palette, cols, rows int, title, status string) [][]devshell.Cell {
	c := newCanvas(cols, rows, pal.Background)
	if rows > 1 {
		c.fill(rect{x: 0, y: 0, w: cols, h: 1}, pal.Status)
		c.text(1, 0, cols-2, title, pal.Status, false)
	}

	c.ox, c.oy = gridLeft, gridTop

	corner := toRect(f.Corner.Rect)
	c.fill(corner, pal.Header)
	c.text(corner.x, corner.y, corner.w-1, f.Corner.Text, pal.Header, false)

	for _, h := range f.ColHeaders {
		r := toRect(h.Rect)
		c.fill(r, pal.Header)
		c.text(r.x, r.y, r.w-1, h.Text, pal.Header, false)
		if h.Sub != "" && r.h > 1 {
			c.text(r.x, r.y+1, r.w-1, h.Sub, pal.Header, true)
		}
	}
	for _, h := range f.RowHeaders {
		r := toRect(h.Rect)
		c.fill(r, pal.Header)
		c.text(r.x, r.y, r.w-1, h.Text, pal.Header, false)
	}

	for _, cell := range f.Cells {
		r := toRect(cell.Rect)
		style := cellStyle(pal, cell.State)
		c.fill(r, style)
		c.text(r.x, r.y, r.w-1, cell.Text, style, true)
	}

	if f.Mask != nil {
		_, bg, _ := pal.Mask.Decompose()
		for _, cell := range f.Cells {
			if cell.State == sheet.CellPrepare || cell.State == sheet.CellSelected {
				continue
			}
			if overlaps(cell.Rect, *f.Mask) {
				c.restyle(toRect(cell.Rect), bg)
			}
		}
	}

	if f.Scrollbar != nil {
		track := toRect(f.Scrollbar.Track)
		thumb := toRect(f.Scrollbar.Thumb)
		for y := track.y; y < track.y+track.h; y++ {
			c.set(track.x, y, '│', pal.Scrollbar)
		}
		for y := thumb.y; y < thumb.y+thumb.h; y++ {
			c.set(thumb.x, y, '█', pal.Scrollbar)
		}
	}

	c.ox, c.oy = 0, 0
	if rows > 0 {
		c.fill(rect{x: 0, y: rows - 1, w: cols, h: 1}, pal.Status)
		c.text(1, rows-1, cols-2, status, pal.Status, false)
	}
	return c.cells
}

func cellStyle(pal Palette, st sheet.CellState) tcell.Style {
	switch st {
	case sheet.CellSelected:
		return pal.Selected
	case sheet.CellPrepare:
		return pal.Prepare
	case sheet.CellHover:
		return pal.Hover
	case sheet.CellEmpty:
		return pal.Empty
	default:
		return pal.Cell
	}
}

func overlaps(a, b brush.Rect) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}
