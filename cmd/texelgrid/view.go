// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelgrid/view.go
// Summary: "view" command: runs the pivot grid in the terminal.

package main

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/texelgrid/apps/pivotgrid"
	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/internal/devshell"
)

func newViewCmd(src *sourceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the pivot grid in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("view needs a terminal; use render for files")
			}
			p, name, err := buildPivot(src, os.Stdin)
			if err != nil {
				return err
			}
			closer, err := setupLogging(src, true)
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}

			appCfg := appConfig(src)
			devshell.Register(pivotgrid.AppName, func([]string) (devshell.App, error) {
				return pivotgrid.New(p, pivotgrid.Options{
					Title:  name,
					Config: appCfg,
					System: config.System(),
				}), nil
			})
			log.Printf("TexelGrid: viewing %s (%d rows, %d columns)", name, p.RowCount(), p.ColCount())
			return devshell.RunApp(pivotgrid.AppName, args)
		},
	}
}
