// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelgrid/main.go
// Summary: texelgrid CLI: interactive pivot grid, scripted snapshots, config tools.

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/framegrace/texelgrid/apps/pivotgrid"
	"github.com/framegrace/texelgrid/config"
)

// sourceFlags selects the dataset and the pivot layout.
type sourceFlags struct {
	xlsx    string
	sheet   string
	sqlite  string
	query   string
	json    string
	rows    []string
	cols    []string
	values  []string
	verbose bool
	logFile string
}

func main() {
	var src sourceFlags
	rootCmd := &cobra.Command{
		Use:   "texelgrid",
		Short: "Pivot grid with brush (drag) selection",
		Long: `texelgrid pivots tabular data from an Excel sheet, a SQLite query or a
JSON array and shows it as a virtualized grid. Cells are selected by dragging;
dragging past an edge scrolls the grid.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&src.xlsx, "xlsx", "", "Excel workbook to load")
	pf.StringVar(&src.sheet, "sheet", "", "worksheet name (default: first sheet)")
	pf.StringVar(&src.sqlite, "sqlite", "", "SQLite database to query")
	pf.StringVar(&src.query, "query", "", "SQL query for --sqlite")
	pf.StringVar(&src.json, "json", "", "JSON file holding an array of objects ('-' for stdin)")
	pf.StringSliceVar(&src.rows, "rows", nil, "row dimension fields")
	pf.StringSliceVar(&src.cols, "cols", nil, "column dimension fields")
	pf.StringSliceVar(&src.values, "values", nil, "value fields")
	pf.BoolVarP(&src.verbose, "verbose", "v", false, "log engine decisions")
	pf.StringVar(&src.logFile, "log-file", "", "log destination (default: log_file from texelgrid.json)")

	rootCmd.AddCommand(newViewCmd(&src), newRenderCmd(&src), newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging points the std logger at the configured file. An interactive
// session never logs to the terminal it draws on.
func setupLogging(src *sourceFlags, interactive bool) (io.Closer, error) {
	path := src.logFile
	if path == "" {
		path = config.System().GetString("", "log_file", "")
	}
	if path == "" && interactive {
		dir, err := config.Dir()
		if err != nil {
			log.SetOutput(io.Discard)
			return nil, nil
		}
		path = filepath.Join(dir, "texelgrid.log")
	}
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// appConfig returns the pivot grid config with command line overrides.
func appConfig(src *sourceFlags) config.Config {
	cfg := config.App(pivotgrid.AppName)
	if !src.verbose {
		return cfg
	}
	cfg = config.Clone(cfg)
	if cfg == nil {
		cfg = make(config.Config)
	}
	section := cfg.Section(pivotgrid.AppName)
	if section == nil {
		section = make(config.Section)
		cfg[pivotgrid.AppName] = section
	}
	section["verbose"] = true
	return cfg
}
