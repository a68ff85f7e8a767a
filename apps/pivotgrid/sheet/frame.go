// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/sheet/frame.go
// Summary: Backend-neutral description of one rendered frame of the sheet.

package sheet

import (
	"math"
	"strings"

	"github.com/framegrace/texelgrid/apps/pivotgrid/brush"
)

// CellState is the visual state of a data cell.
type CellState int

const (
	CellNormal CellState = iota
	CellEmpty
	CellHover
	CellPrepare
	CellSelected
)

// Box is a labelled rectangle in canvas units. Sub is an optional second
// line, used by column headers for the value field.
type Box struct {
	Rect brush.Rect
	Text string
	Sub  string
}

// CellBox is one visible data cell.
type CellBox struct {
	Box
	Row, Col int
	State    CellState
}

// Scrollbar is the vertical scrollbar track and thumb.
type Scrollbar struct {
	Track brush.Rect
	Thumb brush.Rect
}

// Frame lists everything a backend needs to draw. Boxes are clipped to the
// panel they belong to.
type Frame struct {
	Bounds     brush.Bounds
	Corner     Box
	ColHeaders []Box
	RowHeaders []Box
	Cells      []CellBox
	Mask       *brush.Rect
	Scrollbar  *Scrollbar
}

// Frame snapshots the visible part of the sheet.
func (s *Sheet) Frame() Frame {
	l := s.layout
	f := Frame{Bounds: s.ViewportBounds()}
	f.Corner = Box{
		Rect: brush.Rect{Width: l.RowHeaderWidth, Height: l.ColHeaderHeight},
		Text: strings.Join(s.pivot.Config.Rows, " / "),
	}

	panelRight := l.Width - l.ScrollbarThickness
	firstRow, lastRow, firstCol, lastCol := s.VisibleRange()

	for c := firstCol; c <= lastCol; c++ {
		r, ok := clipX(s.CellRect(0, c), l.RowHeaderWidth, panelRight)
		if !ok {
			continue
		}
		r.Y = 0
		r.Height = l.ColHeaderHeight
		text, sub := columnLabel(s.pivot.Cols[c])
		f.ColHeaders = append(f.ColHeaders, Box{Rect: r, Text: text, Sub: sub})
	}

	for row := firstRow; row <= lastRow; row++ {
		r, ok := clipY(s.CellRect(row, 0), l.ColHeaderHeight, l.Height)
		if !ok {
			continue
		}
		header := r
		header.X = 0
		header.Width = l.RowHeaderWidth
		f.RowHeaders = append(f.RowHeaders, Box{Rect: header, Text: strings.Join(s.pivot.Rows[row].Labels, " / ")})

		for c := firstCol; c <= lastCol; c++ {
			cr, ok := clipX(s.CellRect(row, c), l.RowHeaderWidth, panelRight)
			if !ok {
				continue
			}
			cr.Y, cr.Height = r.Y, r.Height
			f.Cells = append(f.Cells, s.cellBox(cr, row, c))
		}
	}

	if s.mask.Visible {
		if m, ok := clipRect(s.mask.Rect, l.RowHeaderWidth, l.ColHeaderHeight, panelRight, l.Height); ok {
			f.Mask = &m
		}
	}
	if l.ScrollbarThickness > 0 {
		f.Scrollbar = s.scrollbar()
	}
	return f
}

func (s *Sheet) cellBox(r brush.Rect, row, col int) CellBox {
	box := CellBox{Box: Box{Rect: r}, Row: row, Col: col}
	v, ok := s.pivot.Value(row, col)
	if ok {
		box.Text = FormatValue(v)
	}
	switch {
	case s.Highlighted(row, col) && s.state.Name == brush.StateSelected:
		box.State = CellSelected
	case s.Highlighted(row, col):
		box.State = CellPrepare
	case s.hover != nil && s.hover.RowIndex == row && s.hover.ColIndex == col:
		box.State = CellHover
	case !ok:
		box.State = CellEmpty
	}
	return box
}

func (s *Sheet) scrollbar() *Scrollbar {
	l := s.layout
	track := brush.Rect{
		X:      l.Width - l.ScrollbarThickness,
		Y:      l.ColHeaderHeight,
		Width:  l.ScrollbarThickness,
		Height: l.viewHeight(),
	}
	content := float64(s.pivot.RowCount()) * l.RowHeight
	thumb := track
	if content > track.Height && content > 0 {
		thumb.Height = math.Max(l.RowHeight, track.Height*track.Height/content)
		thumb.Y = track.Y + (track.Height-thumb.Height)*s.scroll.ScrollY/s.MaxScroll().ScrollY
	}
	return &Scrollbar{Track: track, Thumb: thumb}
}

// columnLabel splits a column leaf into its path label and value field.
func columnLabel(h Header) (string, string) {
	if len(h.Labels) <= 1 {
		return h.Value, ""
	}
	return strings.Join(h.Labels[:len(h.Labels)-1], " / "), h.Value
}

func clipX(r brush.Rect, minX, maxX float64) (brush.Rect, bool) {
	x0 := math.Max(r.X, minX)
	x1 := math.Min(r.X+r.Width, maxX)
	if x1 <= x0 {
		return brush.Rect{}, false
	}
	r.X, r.Width = x0, x1-x0
	return r, true
}

func clipY(r brush.Rect, minY, maxY float64) (brush.Rect, bool) {
	y0 := math.Max(r.Y, minY)
	y1 := math.Min(r.Y+r.Height, maxY)
	if y1 <= y0 {
		return brush.Rect{}, false
	}
	r.Y, r.Height = y0, y1-y0
	return r, true
}

func clipRect(r brush.Rect, minX, minY, maxX, maxY float64) (brush.Rect, bool) {
	r, ok := clipX(r, minX, maxX)
	if !ok {
		return r, false
	}
	return clipY(r, minY, maxY)
}
