// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/sheet/sources.go
// Summary: Dataset loaders for spreadsheets, SQLite queries and JSON records.

package sheet

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"
)

// LoadXLSX reads one worksheet. The first row names the fields; blank header
// cells get positional names ("col3"). An empty sheetName selects the first
// worksheet.
func LoadXLSX(path, sheetName string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return &Dataset{}, nil
	}

	ds := &Dataset{}
	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if name == "" {
			name = "col" + strconv.Itoa(i+1)
		}
		ds.Fields = append(ds.Fields, name)
	}
	for _, row := range rows[1:] {
		rec := make(Record, len(ds.Fields))
		hasData := false
		for i, v := range row {
			if i >= len(ds.Fields) || v == "" {
				continue
			}
			rec[ds.Fields[i]] = v
			hasData = true
		}
		if hasData {
			ds.Records = append(ds.Records, rec)
		}
	}
	return ds, nil
}

// LoadSQLite runs query against the database at path and returns every row.
// Column names become field names; NULL becomes the empty string.
func LoadSQLite(path, query string) (*Dataset, error) {
	dsn := path + "?_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

func scanRows(rows *sql.Rows) (*Dataset, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	ds := &Dataset{Fields: cols}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rec := make(Record, len(cols))
		for i, v := range values {
			rec[cols[i]] = formatSQLValue(v)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, rows.Err()
}

func formatSQLValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// LoadJSON decodes an array of flat objects. The field list is the sorted
// union of keys; nested values are kept as their JSON text.
func LoadJSON(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	ds := &Dataset{}
	seen := make(map[string]bool)
	for _, obj := range raw {
		rec := make(Record, len(obj))
		for k, v := range obj {
			if !seen[k] {
				seen[k] = true
				ds.Fields = append(ds.Fields, k)
			}
			rec[k] = formatJSONValue(v)
		}
		ds.Records = append(ds.Records, rec)
	}
	sort.Strings(ds.Fields)
	return ds, nil
}

func formatJSONValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}
