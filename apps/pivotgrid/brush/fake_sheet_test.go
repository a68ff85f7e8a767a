// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/brush/fake_sheet_test.go
// Summary: Uniform-grid Sheet fake recording every collaborator call.

package brush

import (
	"fmt"
	"math"
)

// fakeSheet is a grid of fixed-size cells filling the whole canvas.
type fakeSheet struct {
	width, height float64
	cellW, cellH  float64
	rows, cols    int
	scrollbar     float64
	scroll        ScrollOffset
	// empty marks cells that have no data and are therefore never displayed.
	empty func(row, col int) bool

	intercepts  map[InterceptKind]bool
	highlights  []HighlightState
	clearStyles int
	scrollSets  []ScrollOffset
	emits       map[EventName][][]CellMeta
	tooltips    [][]CellMeta
	leaves      []LeafNode

	maskPrepared int
	maskShown    []Rect
	maskVisible  bool
}

func newFakeSheet() *fakeSheet {
	s := &fakeSheet{
		width:      200,
		height:     100,
		cellW:      20,
		cellH:      10,
		rows:       1000,
		cols:       50,
		scrollbar:  4,
		intercepts: make(map[InterceptKind]bool),
		emits:      make(map[EventName][][]CellMeta),
	}
	for c := 0; c < s.cols; c++ {
		s.leaves = append(s.leaves, LeafNode{ID: fmt.Sprintf("c%d", c)})
	}
	return s
}

func (s *fakeSheet) cellID(row, col int) string {
	return fmt.Sprintf("%d-c%d", row, col)
}

func (s *fakeSheet) HitTest(p Point) (CellMeta, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= s.width || p.Y >= s.height {
		return CellMeta{}, false
	}
	row := int(math.Floor((p.Y + s.scroll.ScrollY) / s.cellH))
	col := int(math.Floor((p.X + s.scroll.ScrollX) / s.cellW))
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return CellMeta{}, false
	}
	return CellMeta{RowIndex: row, ColIndex: col, ID: s.cellID(row, col)}, true
}

func (s *fakeSheet) ViewportBounds() Bounds {
	return Bounds{Width: s.width, Height: s.height}
}

func (s *fakeSheet) PanelBounds() PanelBounds {
	return PanelBounds{MinX: 0, MinY: 0, MaxX: s.width, MaxY: s.height}
}

func (s *fakeSheet) ScrollbarThickness() float64 { return s.scrollbar }
func (s *fakeSheet) ColumnLeafNodes() []LeafNode { return s.leaves }

func (s *fakeSheet) DisplayedCells() []CellMeta {
	var out []CellMeta
	firstRow := int(s.scroll.ScrollY / s.cellH)
	firstCol := int(s.scroll.ScrollX / s.cellW)
	lastRow := int((s.scroll.ScrollY + s.height - 1) / s.cellH)
	lastCol := int((s.scroll.ScrollX + s.width - 1) / s.cellW)
	for r := firstRow; r <= lastRow && r < s.rows; r++ {
		for c := firstCol; c <= lastCol && c < s.cols; c++ {
			if s.empty != nil && s.empty(r, c) {
				continue
			}
			out = append(out, CellMeta{RowIndex: r, ColIndex: c, ID: s.cellID(r, c)})
		}
	}
	return out
}

func (s *fakeSheet) ScrollOffset() ScrollOffset { return s.scroll }

func (s *fakeSheet) SetScrollOffset(o ScrollOffset, animate bool) {
	if o.ScrollY < 0 {
		o.ScrollY = 0
	}
	s.scroll = o
	s.scrollSets = append(s.scrollSets, o)
}

func (s *fakeSheet) AddIntercept(k InterceptKind)      { s.intercepts[k] = true }
func (s *fakeSheet) RemoveIntercept(k InterceptKind)   { delete(s.intercepts, k) }
func (s *fakeSheet) HasIntercept(k InterceptKind) bool { return s.intercepts[k] }
func (s *fakeSheet) SetHighlight(h HighlightState)     { s.highlights = append(s.highlights, h) }
func (s *fakeSheet) ClearStyle()                       { s.clearStyles++ }

func (s *fakeSheet) Emit(name EventName, cells []CellMeta) {
	s.emits[name] = append(s.emits[name], cells)
}

func (s *fakeSheet) ShowTooltip(cells []CellMeta) { s.tooltips = append(s.tooltips, cells) }

func (s *fakeSheet) Prepare() {
	s.maskPrepared++
	s.maskVisible = false
}

func (s *fakeSheet) Show(r Rect) {
	s.maskShown = append(s.maskShown, r)
	s.maskVisible = true
}

func (s *fakeSheet) Hide() { s.maskVisible = false }

func (s *fakeSheet) lastHighlight() HighlightState {
	if len(s.highlights) == 0 {
		return HighlightState{}
	}
	return s.highlights[len(s.highlights)-1]
}
