// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelgrid/data.go
// Summary: Loads the dataset chosen on the command line and pivots it.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/framegrace/texelgrid/apps/pivotgrid/sheet"
)

var errNoSource = errors.New("choose exactly one of --xlsx, --sqlite or --json, or none for demo data")

// loadDataset reads the selected source. Without a source it returns the
// built-in demo data.
func loadDataset(src *sourceFlags, stdin io.Reader) (*sheet.Dataset, string, error) {
	n := 0
	for _, s := range []string{src.xlsx, src.sqlite, src.json} {
		if s != "" {
			n++
		}
	}
	if n > 1 {
		return nil, "", errNoSource
	}

	switch {
	case src.xlsx != "":
		ds, err := sheet.LoadXLSX(src.xlsx, src.sheet)
		return ds, filepath.Base(src.xlsx), err
	case src.sqlite != "":
		if src.query == "" {
			return nil, "", fmt.Errorf("--sqlite needs --query")
		}
		ds, err := sheet.LoadSQLite(src.sqlite, src.query)
		return ds, filepath.Base(src.sqlite), err
	case src.json == "-":
		ds, err := sheet.LoadJSON(stdin)
		return ds, "stdin", err
	case src.json != "":
		f, err := os.Open(src.json)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		ds, err := sheet.LoadJSON(f)
		return ds, filepath.Base(src.json), err
	default:
		return demoDataset(), "demo", nil
	}
}

// pivotConfig fills in dimensions the user left out. Missing rows take the
// first field, missing columns the second, and missing values every field
// that is not a dimension.
func pivotConfig(src *sourceFlags, ds *sheet.Dataset) (sheet.PivotConfig, error) {
	cfg := sheet.PivotConfig{
		Rows:    trimAll(src.rows),
		Columns: trimAll(src.cols),
		Values:  trimAll(src.values),
	}
	for _, group := range [][]string{cfg.Rows, cfg.Columns, cfg.Values} {
		for _, f := range group {
			if !ds.HasField(f) {
				return cfg, fmt.Errorf("unknown field %q (have %s)", f, strings.Join(ds.Fields, ", "))
			}
		}
	}
	used := make(map[string]bool)
	for _, f := range append(append(append([]string{}, cfg.Rows...), cfg.Columns...), cfg.Values...) {
		used[f] = true
	}
	pick := func() string {
		for _, f := range ds.Fields {
			if !used[f] {
				used[f] = true
				return f
			}
		}
		return ""
	}
	if len(cfg.Rows) == 0 {
		if f := pick(); f != "" {
			cfg.Rows = []string{f}
		}
	}
	if len(cfg.Columns) == 0 {
		if f := pick(); f != "" {
			cfg.Columns = []string{f}
		}
	}
	if len(cfg.Values) == 0 {
		for f := pick(); f != ""; f = pick() {
			cfg.Values = append(cfg.Values, f)
		}
	}
	return cfg, nil
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// buildPivot loads and pivots the selected source.
func buildPivot(src *sourceFlags, stdin io.Reader) (*sheet.Pivot, string, error) {
	ds, name, err := loadDataset(src, stdin)
	if err != nil {
		return nil, "", err
	}
	cfg, err := pivotConfig(src, ds)
	if err != nil {
		return nil, "", err
	}
	p, err := sheet.Build(ds, cfg)
	if err != nil {
		return nil, "", fmt.Errorf("pivot %s: %w", name, err)
	}
	return p, name, nil
}

// demoDataset is a regions x months sales table large enough to scroll in
// both directions.
func demoDataset() *sheet.Dataset {
	regions := []string{
		"Amsterdam", "Athens", "Barcelona", "Berlin", "Brussels", "Bucharest",
		"Budapest", "Copenhagen", "Dublin", "Edinburgh", "Florence", "Geneva",
		"Hamburg", "Helsinki", "Istanbul", "Kyiv", "Lisbon", "Ljubljana",
		"London", "Lyon", "Madrid", "Marseille", "Milan", "Munich", "Naples",
		"Oslo", "Paris", "Porto", "Prague", "Reykjavik", "Riga", "Rome",
		"Seville", "Sofia", "Stockholm", "Tallinn", "Valencia", "Vienna",
		"Vilnius", "Warsaw", "Zagreb", "Zurich",
	}
	months := []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}
	ds := &sheet.Dataset{Fields: []string{"city", "month", "sales", "units"}}
	for i, city := range regions {
		for j, m := range months {
			// Deterministic pseudo data; every seventh cell is left empty.
			if (i*len(months)+j)%7 == 6 {
				continue
			}
			units := (i*37+j*53)%90 + 10
			ds.Records = append(ds.Records, sheet.Record{
				"city":  city,
				"month": "2025-" + m,
				"sales": fmt.Sprintf("%d.%02d", units*12+(i*j)%100, (i+j)%100),
				"units": fmt.Sprintf("%d", units),
			})
		}
	}
	return ds
}
