// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/brush/types.go
// Summary: Value types shared by the brush selection engine.

package brush

// Point is a canvas-local pixel position.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned pixel rectangle in current viewport space.
type Rect struct {
	X, Y, Width, Height float64
}

// ScrollOffset is the grid scroll position in pixels.
type ScrollOffset struct {
	ScrollX, ScrollY float64
}

// Bounds is the pixel size of the canvas viewport.
type Bounds struct {
	Width, Height float64
}

// PanelBounds is the bounding box of the data-cell panel inside the canvas.
type PanelBounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// CellMeta is the logical identity of a rendered cell.
type CellMeta struct {
	RowIndex int
	ColIndex int
	ID       string
}

// LeafNode is a column header leaf, positionally indexable by column index.
type LeafNode struct {
	ID string
}

// BrushPoint is one end of a drag, captured together with the scroll offset
// in effect at capture time.
type BrushPoint struct {
	X, Y     float64
	RowIndex int
	ColIndex int
	ScrollX  float64
	ScrollY  float64
}

// RangeCorner is one corner of a normalized brush range.
type RangeCorner struct {
	RowIndex int
	ColIndex int
	X, Y     float64
}

// BrushRange is the normalized drag rectangle. Start holds the minimum
// indices and pixel coordinates, End the maximum.
type BrushRange struct {
	Start  RangeCorner
	End    RangeCorner
	Width  float64
	Height float64
}

// Rect returns the pixel rectangle covered by the range.
func (r BrushRange) Rect() Rect {
	return Rect{X: r.Start.X, Y: r.Start.Y, Width: r.Width, Height: r.Height}
}

// Contains reports whether the logical cell lies inside the range, inclusive.
func (r BrushRange) Contains(rowIndex, colIndex int) bool {
	return rowIndex >= r.Start.RowIndex && rowIndex <= r.End.RowIndex &&
		colIndex >= r.Start.ColIndex && colIndex <= r.End.ColIndex
}

// Stage is the lifecycle stage of a brush gesture.
type Stage int

const (
	// StageUnDragged means no gesture is active.
	StageUnDragged Stage = iota
	// StageClick means the primary button went down on a cell but has not moved.
	StageClick
	// StageDragged means the pointer moved while the button was held.
	StageDragged
)

func (s Stage) String() string {
	switch s {
	case StageUnDragged:
		return "UN_DRAGGED"
	case StageClick:
		return "CLICK"
	case StageDragged:
		return "DRAGGED"
	default:
		return "UNKNOWN"
	}
}

// AxisDelta records whether auto-scroll applies on one axis and in which
// direction (sign of Value).
type AxisDelta struct {
	Value  float64
	Scroll bool
}

// ScrollDelta is the per-drag auto-scroll direction state.
type ScrollDelta struct {
	X AxisDelta
	Y AxisDelta
}

// Active reports whether either axis needs scrolling.
func (d ScrollDelta) Active() bool {
	return d.X.Scroll || d.Y.Scroll
}

// SelectedCell identifies one cell of a committed selection. The ID is derived
// from the row index and the column leaf id, independent of rendering.
type SelectedCell struct {
	RowIndex int
	ColIndex int
	ID       string
	Type     string
}

// DataCellType is the Type of every materialized selection entry.
const DataCellType = "dataCell"

// InterceptKind names a category of interaction that can be suppressed.
type InterceptKind string

const (
	InterceptClick          InterceptKind = "click"
	InterceptHover          InterceptKind = "hover"
	InterceptBrushSelection InterceptKind = "brushSelection"
)

// StateName names a highlight state in the interaction state sink.
type StateName string

const (
	StatePrepareSelect StateName = "prepareSelect"
	StateSelected      StateName = "selected"
)

// EventName names a notification emitted on commit.
type EventName string

const (
	// EventDataCellBrushSelection carries the rendered cells touched by the drag.
	EventDataCellBrushSelection EventName = "data-cell:brush-selection"
	// EventGlobalSelected is the generic selection-changed notification.
	EventGlobalSelected EventName = "global:selected"
)

// Button is the pointer button of a press or release.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)
