// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/brush/collaborators.go
// Summary: Narrow interfaces the brush engine consumes from the sheet.

package brush

// Canvas converts canvas points into rendered cells.
type Canvas interface {
	// HitTest returns the rendered cell covering p, or ok=false.
	HitTest(p Point) (meta CellMeta, ok bool)
}

// Layout exposes viewport geometry and the virtualization window.
type Layout interface {
	ViewportBounds() Bounds
	PanelBounds() PanelBounds
	ScrollbarThickness() float64
	// ColumnLeafNodes returns all column leaves in display order.
	ColumnLeafNodes() []LeafNode
	// DisplayedCells returns the cells currently materialized in the viewport.
	DisplayedCells() []CellMeta
}

// ScrollPort reads and writes the grid scroll offset.
type ScrollPort interface {
	ScrollOffset() ScrollOffset
	SetScrollOffset(offset ScrollOffset, animate bool)
}

// Interaction is the cross-interaction gating and highlight-state sink.
type Interaction interface {
	AddIntercept(kind InterceptKind)
	RemoveIntercept(kind InterceptKind)
	HasIntercept(kind InterceptKind) bool
	SetHighlight(state HighlightState)
	// ClearStyle drops independent per-cell style overrides such as hover rows.
	ClearStyle()
}

// HighlightState replaces the current interaction highlight.
type HighlightState struct {
	Name    StateName
	CellIDs []string
	Force   bool
}

// Notifier receives selection notifications.
type Notifier interface {
	Emit(name EventName, cells []CellMeta)
	ShowTooltip(cells []CellMeta)
}

// Mask is the prepare-select overlay drawn over the drag rectangle.
type Mask interface {
	Prepare()
	Show(r Rect)
	Hide()
}

// View is the read-only surface the transition function may query.
type View interface {
	Canvas
	Layout
	ScrollOffset() ScrollOffset
	HasIntercept(kind InterceptKind) bool
}

// Sheet is everything the engine needs from its host.
type Sheet interface {
	Canvas
	Layout
	ScrollPort
	Interaction
	Notifier
}
