// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/sheet/tooltip.go
// Summary: Summary data shown for the active (selected) cells.

package sheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/framegrace/texelgrid/apps/pivotgrid/brush"
)

// FieldSummary aggregates the selected cells of one value field.
type FieldSummary struct {
	Field string
	Count int
	Sum   float64
}

// Avg returns the mean value, or 0 for an empty summary.
func (f FieldSummary) Avg() float64 {
	if f.Count == 0 {
		return 0
	}
	return f.Sum / float64(f.Count)
}

// Tooltip is the content of the selection tooltip.
type Tooltip struct {
	Count     int
	Summaries []FieldSummary
}

// String renders the tooltip as a single status line.
func (t Tooltip) String() string {
	if t.Count == 0 {
		return "0 cells selected"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d cells selected", t.Count)
	for _, s := range t.Summaries {
		fmt.Fprintf(&b, " | %s: sum %s avg %s", s.Field, FormatValue(s.Sum), FormatValue(s.Avg()))
	}
	return b.String()
}

// summarize groups cells by value field in column order.
func summarize(p *Pivot, cells []brush.CellMeta) Tooltip {
	t := Tooltip{}
	index := make(map[string]int)
	for _, c := range cells {
		v, ok := p.Value(c.RowIndex, c.ColIndex)
		if !ok {
			continue
		}
		field := p.Cols[c.ColIndex].Value
		i, seen := index[field]
		if !seen {
			i = len(t.Summaries)
			index[field] = i
			t.Summaries = append(t.Summaries, FieldSummary{Field: field})
		}
		t.Summaries[i].Count++
		t.Summaries[i].Sum += v
		t.Count++
	}
	return t
}

// FormatValue prints a cell value without a trailing ".00" for integers.
func FormatValue(v float64) string {
	if math.Trunc(v) == v && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return fmt.Sprintf("%.2f", v)
}
