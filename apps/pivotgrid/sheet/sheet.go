// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/sheet/sheet.go
// Summary: Virtualized pivot sheet hosting the brush engine.
//
// The sheet is the host the brush engine talks to. It owns:
//   - geometry and the scroll offset, clamped to the content
//   - hit-testing of canvas points against the data panel
//   - the virtualization window (only visible cells with data are "rendered")
//   - the interaction state: intercepts, highlight state, hover, tooltip, mask
//   - a small synchronous event bus for selection notifications
//
// A Sheet is not safe for concurrent use. It is driven from the same goroutine
// that runs the brush engine.

package sheet

import (
	"math"

	"github.com/framegrace/texelgrid/apps/pivotgrid/brush"
)

// Listener receives the cells attached to an emitted event.
type Listener func(cells []brush.CellMeta)

// MaskState is the prepare-select overlay.
type MaskState struct {
	Prepared bool
	Visible  bool
	Rect     brush.Rect
}

// Sheet implements brush.Sheet and brush.Mask over a Pivot.
type Sheet struct {
	pivot  *Pivot
	layout Layout
	scroll brush.ScrollOffset

	intercepts map[brush.InterceptKind]bool
	state      brush.HighlightState
	stateIDs   map[string]bool
	hover      *brush.CellMeta
	clears     int

	listeners map[brush.EventName][]Listener
	tooltip   *Tooltip
	mask      MaskState
}

// New creates a sheet for p. Zero layout fields take TerminalLayout values.
func New(p *Pivot, l Layout) *Sheet {
	return &Sheet{
		pivot:      p,
		layout:     l.withDefaults(TerminalLayout()),
		intercepts: make(map[brush.InterceptKind]bool),
		stateIDs:   make(map[string]bool),
		listeners:  make(map[brush.EventName][]Listener),
	}
}

// Pivot returns the underlying pivot table.
func (s *Sheet) Pivot() *Pivot { return s.pivot }

// Layout returns the current geometry.
func (s *Sheet) Layout() Layout { return s.layout }

// Resize changes the canvas size and re-clamps the scroll offset.
func (s *Sheet) Resize(width, height float64) {
	s.layout.Width = width
	s.layout.Height = height
	s.scroll = s.clampScroll(s.scroll)
}

// --- brush.Canvas ---

// HitTest resolves p to the data cell under it. Points over headers, the
// scrollbar or past the last row/column resolve to nothing.
func (s *Sheet) HitTest(p brush.Point) (brush.CellMeta, bool) {
	l := s.layout
	if p.X < l.RowHeaderWidth || p.Y < l.ColHeaderHeight {
		return brush.CellMeta{}, false
	}
	if p.X >= l.Width-l.ScrollbarThickness || p.Y >= l.Height {
		return brush.CellMeta{}, false
	}
	col := int(math.Floor((p.X - l.RowHeaderWidth + s.scroll.ScrollX) / l.ColWidth))
	row := int(math.Floor((p.Y - l.ColHeaderHeight + s.scroll.ScrollY) / l.RowHeight))
	if row < 0 || row >= s.pivot.RowCount() || col < 0 || col >= s.pivot.ColCount() {
		return brush.CellMeta{}, false
	}
	return s.meta(row, col), true
}

func (s *Sheet) meta(row, col int) brush.CellMeta {
	return brush.CellMeta{RowIndex: row, ColIndex: col, ID: s.pivot.CellID(row, col)}
}

// --- brush.Layout ---

func (s *Sheet) ViewportBounds() brush.Bounds {
	return brush.Bounds{Width: s.layout.Width, Height: s.layout.Height}
}

// PanelBounds is the data area below the column headers and right of the row headers.
func (s *Sheet) PanelBounds() brush.PanelBounds {
	return brush.PanelBounds{
		MinX: s.layout.RowHeaderWidth,
		MinY: s.layout.ColHeaderHeight,
		MaxX: s.layout.Width,
		MaxY: s.layout.Height,
	}
}

func (s *Sheet) ScrollbarThickness() float64 { return s.layout.ScrollbarThickness }

func (s *Sheet) ColumnLeafNodes() []brush.LeafNode {
	out := make([]brush.LeafNode, len(s.pivot.Cols))
	for i, h := range s.pivot.Cols {
		out[i] = brush.LeafNode{ID: h.ID}
	}
	return out
}

// DisplayedCells returns the visible cells that have data.
func (s *Sheet) DisplayedCells() []brush.CellMeta {
	firstRow, lastRow, firstCol, lastCol := s.VisibleRange()
	var out []brush.CellMeta
	for r := firstRow; r <= lastRow; r++ {
		for c := firstCol; c <= lastCol; c++ {
			if _, ok := s.pivot.Value(r, c); ok {
				out = append(out, s.meta(r, c))
			}
		}
	}
	return out
}

// VisibleRange returns the inclusive window of rows and columns intersecting
// the viewport. Empty windows have last < first.
func (s *Sheet) VisibleRange() (firstRow, lastRow, firstCol, lastCol int) {
	l := s.layout
	firstRow = int(s.scroll.ScrollY / l.RowHeight)
	lastRow = int(math.Ceil((s.scroll.ScrollY+l.viewHeight())/l.RowHeight)) - 1
	firstCol = int(s.scroll.ScrollX / l.ColWidth)
	lastCol = int(math.Ceil((s.scroll.ScrollX+l.viewWidth())/l.ColWidth)) - 1
	if lastRow >= s.pivot.RowCount() {
		lastRow = s.pivot.RowCount() - 1
	}
	if lastCol >= s.pivot.ColCount() {
		lastCol = s.pivot.ColCount() - 1
	}
	return firstRow, lastRow, firstCol, lastCol
}

// CellRect returns the canvas rectangle of a cell, which may lie partly or
// entirely outside the viewport.
func (s *Sheet) CellRect(row, col int) brush.Rect {
	l := s.layout
	return brush.Rect{
		X:      l.RowHeaderWidth + float64(col)*l.ColWidth - s.scroll.ScrollX,
		Y:      l.ColHeaderHeight + float64(row)*l.RowHeight - s.scroll.ScrollY,
		Width:  l.ColWidth,
		Height: l.RowHeight,
	}
}

// --- brush.ScrollPort ---

func (s *Sheet) ScrollOffset() brush.ScrollOffset { return s.scroll }

// SetScrollOffset moves the viewport, clamped to the content. There is no
// animation: the offset applies immediately.
func (s *Sheet) SetScrollOffset(o brush.ScrollOffset, animate bool) {
	s.scroll = s.clampScroll(o)
}

// ScrollBy moves the viewport by a relative amount.
func (s *Sheet) ScrollBy(dx, dy float64) {
	s.SetScrollOffset(brush.ScrollOffset{
		ScrollX: s.scroll.ScrollX + dx,
		ScrollY: s.scroll.ScrollY + dy,
	}, false)
}

// MaxScroll returns the largest valid scroll offset.
func (s *Sheet) MaxScroll() brush.ScrollOffset {
	l := s.layout
	return brush.ScrollOffset{
		ScrollX: math.Max(0, float64(s.pivot.ColCount())*l.ColWidth-l.viewWidth()),
		ScrollY: math.Max(0, float64(s.pivot.RowCount())*l.RowHeight-l.viewHeight()),
	}
}

func (s *Sheet) clampScroll(o brush.ScrollOffset) brush.ScrollOffset {
	limit := s.MaxScroll()
	o.ScrollX = math.Min(math.Max(o.ScrollX, 0), limit.ScrollX)
	o.ScrollY = math.Min(math.Max(o.ScrollY, 0), limit.ScrollY)
	return o
}

// --- brush.Interaction ---

func (s *Sheet) AddIntercept(k brush.InterceptKind)      { s.intercepts[k] = true }
func (s *Sheet) RemoveIntercept(k brush.InterceptKind)   { delete(s.intercepts, k) }
func (s *Sheet) HasIntercept(k brush.InterceptKind) bool { return s.intercepts[k] }

// SetHighlight replaces the interaction state. A non-forced update with the
// same name and ids is ignored.
func (s *Sheet) SetHighlight(h brush.HighlightState) {
	if !h.Force && h.Name == s.state.Name && sameIDs(h.CellIDs, s.state.CellIDs) {
		return
	}
	s.state = h
	s.stateIDs = make(map[string]bool, len(h.CellIDs))
	for _, id := range h.CellIDs {
		s.stateIDs[id] = true
	}
}

// ClearStyle drops the hover highlight.
func (s *Sheet) ClearStyle() {
	s.hover = nil
	s.clears++
}

// StyleClears counts ClearStyle calls.
func (s *Sheet) StyleClears() int { return s.clears }

// State returns the current interaction state.
func (s *Sheet) State() brush.HighlightState { return s.state }

// Highlighted reports whether the cell is part of the current interaction state.
func (s *Sheet) Highlighted(row, col int) bool {
	return s.stateIDs[s.pivot.CellID(row, col)]
}

// SetHover marks the cell under p as hovered unless hover is intercepted.
func (s *Sheet) SetHover(p brush.Point) {
	if s.intercepts[brush.InterceptHover] {
		return
	}
	meta, ok := s.HitTest(p)
	if !ok {
		s.hover = nil
		return
	}
	s.hover = &meta
}

// Hover returns the hovered cell, if any.
func (s *Sheet) Hover() (brush.CellMeta, bool) {
	if s.hover == nil {
		return brush.CellMeta{}, false
	}
	return *s.hover, true
}

// ClearSelection resets the interaction state, the selection intercepts and
// the tooltip.
func (s *Sheet) ClearSelection() {
	s.SetHighlight(brush.HighlightState{Force: true})
	delete(s.intercepts, brush.InterceptBrushSelection)
	delete(s.intercepts, brush.InterceptHover)
	s.tooltip = nil
}

// --- brush.Notifier ---

// On registers fn for name. Listeners run synchronously in registration order.
func (s *Sheet) On(name brush.EventName, fn Listener) {
	s.listeners[name] = append(s.listeners[name], fn)
}

func (s *Sheet) Emit(name brush.EventName, cells []brush.CellMeta) {
	for _, fn := range s.listeners[name] {
		fn(cells)
	}
}

// ShowTooltip summarizes cells for the selection tooltip.
func (s *Sheet) ShowTooltip(cells []brush.CellMeta) {
	t := summarize(s.pivot, cells)
	s.tooltip = &t
}

// Tooltip returns the current tooltip, if one is shown.
func (s *Sheet) Tooltip() (Tooltip, bool) {
	if s.tooltip == nil {
		return Tooltip{}, false
	}
	return *s.tooltip, true
}

// --- brush.Mask ---

func (s *Sheet) Prepare() {
	s.mask = MaskState{Prepared: true}
}

func (s *Sheet) Show(r brush.Rect) {
	s.mask.Visible = true
	s.mask.Rect = r
}

func (s *Sheet) Hide() {
	s.mask.Visible = false
}

// Mask returns the overlay state.
func (s *Sheet) Mask() MaskState { return s.mask }

// Cell returns the value of a logical cell whether or not it is on screen.
func (s *Sheet) Cell(row, col int) (float64, bool) {
	return s.pivot.Value(row, col)
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var (
	_ brush.Sheet = (*Sheet)(nil)
	_ brush.Mask  = (*Sheet)(nil)
)
