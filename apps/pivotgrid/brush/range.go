// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/brush/range.go
// Summary: Pure geometry for brush ranges, live highlight and materialization.

package brush

import (
	"math"
	"strconv"
)

// Range normalizes two drag endpoints into a rectangle. The start point is
// re-projected into current viewport space because scrolling during the drag
// moves it on screen while its logical cell stays fixed.
func Range(start, end BrushPoint, scroll ScrollOffset) BrushRange {
	startX := start.X + start.ScrollX - scroll.ScrollX
	startY := start.Y + start.ScrollY - scroll.ScrollY

	minX, maxX := math.Min(startX, end.X), math.Max(startX, end.X)
	minY, maxY := math.Min(startY, end.Y), math.Max(startY, end.Y)

	return BrushRange{
		Start: RangeCorner{
			RowIndex: min(start.RowIndex, end.RowIndex),
			ColIndex: min(start.ColIndex, end.ColIndex),
			X:        minX,
			Y:        minY,
		},
		End: RangeCorner{
			RowIndex: max(start.RowIndex, end.RowIndex),
			ColIndex: max(start.ColIndex, end.ColIndex),
			X:        maxX,
			Y:        maxY,
		},
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Project filters rendered cells down to those inside the logical range.
// The result is never nil so callers can always push it as a state.
func Project(cells []CellMeta, r BrushRange) []CellMeta {
	out := make([]CellMeta, 0, len(cells))
	for _, c := range cells {
		if r.Contains(c.RowIndex, c.ColIndex) {
			out = append(out, c)
		}
	}
	return out
}

// Materialize expands the logical range into every cell id it covers, in
// row-major order. Column indices without a leaf node are skipped.
func Materialize(r BrushRange, cols []LeafNode) []SelectedCell {
	rows := r.End.RowIndex - r.Start.RowIndex + 1
	span := r.End.ColIndex - r.Start.ColIndex + 1
	if rows <= 0 || span <= 0 {
		return nil
	}
	out := make([]SelectedCell, 0, rows*span)
	for row := r.Start.RowIndex; row <= r.End.RowIndex; row++ {
		prefix := strconv.Itoa(row) + "-"
		for col := r.Start.ColIndex; col <= r.End.ColIndex; col++ {
			if col < 0 || col >= len(cols) {
				continue
			}
			out = append(out, SelectedCell{
				RowIndex: row,
				ColIndex: col,
				ID:       prefix + cols[col].ID,
				Type:     DataCellType,
			})
		}
	}
	return out
}

// SelectedIDs returns the ids of a materialized selection.
func SelectedIDs(cells []SelectedCell) []string {
	ids := make([]string, len(cells))
	for i, c := range cells {
		ids[i] = c.ID
	}
	return ids
}

// CellIDs returns the ids of rendered cells.
func CellIDs(cells []CellMeta) []string {
	ids := make([]string, len(cells))
	for i, c := range cells {
		ids[i] = c.ID
	}
	return ids
}

// inCanvas reports whether p lies strictly inside the viewport.
func inCanvas(p Point, b Bounds) bool {
	return p.X > 0 && p.X < b.Width && p.Y > 0 && p.Y < b.Height
}

// edgeProjection is the result of pushing the end point by a delta and
// clamping it back inside the panel.
type edgeProjection struct {
	Point   Point
	ScrollX bool
	ScrollY bool
}

// projectToEdge moves end by delta. An axis that reaches or leaves the
// viewport edge is clamped just inside the panel and flagged for scrolling,
// matching the open bounds of inCanvas. The horizontal far
// edge also leaves room for the vertical scrollbar.
func projectToEdge(end BrushPoint, delta Point, b Bounds, panel PanelBounds, scrollbar, margin float64) edgeProjection {
	p := edgeProjection{
		Point:   Point{X: end.X + delta.X, Y: end.Y + delta.Y},
		ScrollX: true,
		ScrollY: true,
	}

	switch {
	case p.Point.X >= b.Width:
		p.Point.X = panel.MaxX - scrollbar - margin
	case p.Point.X <= 0:
		p.Point.X = panel.MinX + margin
	default:
		p.ScrollX = false
	}

	switch {
	case p.Point.Y >= b.Height:
		p.Point.Y = panel.MaxY - margin
	case p.Point.Y <= 0:
		p.Point.Y = panel.MinY + margin
	default:
		p.ScrollY = false
	}
	return p
}

// bumpScroll advances offset one auto-scroll step in the recorded directions.
func bumpScroll(offset ScrollOffset, d ScrollDelta, stepX, stepY float64) ScrollOffset {
	if d.Y.Scroll {
		if d.Y.Value > 0 {
			offset.ScrollY += stepY
		} else {
			offset.ScrollY -= stepY
		}
	}
	if d.X.Scroll {
		if d.X.Value > 0 {
			offset.ScrollX += stepX
		} else {
			offset.ScrollX -= stepX
		}
		if offset.ScrollX < 0 {
			offset.ScrollX = 0
		}
	}
	return offset
}
