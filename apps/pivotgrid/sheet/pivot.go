// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/sheet/pivot.go
// Summary: Pivot builder producing row/column leaves and a sparse sum matrix.

package sheet

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// LeafSeparator joins the path segments of a header leaf id.
const LeafSeparator = "[&]"

// RootID prefixes every leaf id.
const RootID = "root"

// PivotConfig names the fields placed on each axis.
type PivotConfig struct {
	Rows    []string
	Columns []string
	Values  []string
}

// Header is one leaf of a header tree. Labels is the path below the root;
// column leaves end with the value field name.
type Header struct {
	ID     string
	Labels []string
	Value  string
}

// Label returns the last path segment, or "" for an empty path.
func (h Header) Label() string {
	if len(h.Labels) == 0 {
		return ""
	}
	return h.Labels[len(h.Labels)-1]
}

type cellKey struct {
	row, col int
}

type aggregate struct {
	sum   float64
	count int
}

// Pivot is a built pivot table: row leaves, column leaves and the aggregated
// values of the cells that have data.
type Pivot struct {
	Config PivotConfig
	Rows   []Header
	Cols   []Header
	cells  map[cellKey]aggregate
}

// ErrNoValues is returned when the pivot has no value fields.
var ErrNoValues = errors.New("pivot: at least one value field is required")

// Build groups ds by the configured row and column fields and sums every
// value field. Values that do not parse as numbers count towards the cell's
// presence but not its sum.
func Build(ds *Dataset, cfg PivotConfig) (*Pivot, error) {
	if len(cfg.Values) == 0 {
		return nil, ErrNoValues
	}
	for _, group := range [][]string{cfg.Rows, cfg.Columns, cfg.Values} {
		for _, f := range group {
			if !ds.HasField(f) {
				return nil, fmt.Errorf("pivot: unknown field %q", f)
			}
		}
	}

	rowKeys := distinctTuples(ds.Records, cfg.Rows)
	colKeys := distinctTuples(ds.Records, cfg.Columns)

	p := &Pivot{Config: cfg, cells: make(map[cellKey]aggregate)}
	rowIndex := make(map[string]int, len(rowKeys))
	for i, k := range rowKeys {
		rowIndex[tupleKey(k)] = i
		p.Rows = append(p.Rows, Header{ID: leafID(k, ""), Labels: k})
	}
	colIndex := make(map[string]int, len(colKeys)*len(cfg.Values))
	for _, k := range colKeys {
		for _, v := range cfg.Values {
			colIndex[tupleKey(k)+LeafSeparator+v] = len(p.Cols)
			labels := append(append([]string(nil), k...), v)
			p.Cols = append(p.Cols, Header{ID: leafID(k, v), Labels: labels, Value: v})
		}
	}

	for _, rec := range ds.Records {
		r := rowIndex[tupleKey(tuple(rec, cfg.Rows))]
		ck := tupleKey(tuple(rec, cfg.Columns))
		for _, v := range cfg.Values {
			raw, ok := rec[v]
			if !ok || raw == "" {
				continue
			}
			key := cellKey{row: r, col: colIndex[ck+LeafSeparator+v]}
			agg := p.cells[key]
			if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
				agg.sum += n
			}
			agg.count++
			p.cells[key] = agg
		}
	}
	return p, nil
}

// RowCount returns the number of row leaves.
func (p *Pivot) RowCount() int { return len(p.Rows) }

// ColCount returns the number of column leaves.
func (p *Pivot) ColCount() int { return len(p.Cols) }

// Value returns the aggregated value at (row, col) and whether the cell has data.
func (p *Pivot) Value(row, col int) (float64, bool) {
	agg, ok := p.cells[cellKey{row: row, col: col}]
	return agg.sum, ok
}

// Count returns how many source records contributed to (row, col).
func (p *Pivot) Count(row, col int) int {
	return p.cells[cellKey{row: row, col: col}].count
}

// CellID returns the logical id of a data cell: "{row}-{column leaf id}".
func (p *Pivot) CellID(row, col int) string {
	if col < 0 || col >= len(p.Cols) {
		return ""
	}
	return strconv.Itoa(row) + "-" + p.Cols[col].ID
}

func tuple(rec Record, fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = rec[f]
	}
	return out
}

func tupleKey(t []string) string {
	return strings.Join(t, LeafSeparator)
}

func leafID(path []string, value string) string {
	parts := append([]string{RootID}, path...)
	if value != "" {
		parts = append(parts, value)
	}
	return strings.Join(parts, LeafSeparator)
}

// distinctTuples returns the sorted distinct field tuples. With no fields
// there is exactly one empty tuple.
func distinctTuples(records []Record, fields []string) [][]string {
	if len(fields) == 0 {
		return [][]string{{}}
	}
	seen := make(map[string]bool)
	var out [][]string
	for _, rec := range records {
		t := tuple(rec, fields)
		k := tupleKey(t)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	return out
}
