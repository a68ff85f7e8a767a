// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/sheet/dataset.go
// Summary: Flat record set fed into the pivot builder.

package sheet

// Record is one flat row of source data, keyed by field name.
type Record map[string]string

// Dataset is an ordered list of records sharing a field list.
type Dataset struct {
	Fields  []string
	Records []Record
}

// HasField reports whether name is one of the dataset's fields.
func (d *Dataset) HasField(name string) bool {
	for _, f := range d.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}
