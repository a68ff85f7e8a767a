// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelgrid/config_cmd.go
// Summary: "config" command: shows and writes the JSON config files.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/defaults"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialise the config files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := config.Files(defaults.Apps()...)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "apps",
		Short: "List apps with embedded defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range defaults.Apps() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [app]",
		Short: "Print the effective system or app config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.System()
			if len(args) == 1 {
				cfg = config.App(args[0])
			}
			if err := config.Err(); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SaveSystem(); err != nil {
				return fmt.Errorf("save system config: %w", err)
			}
			for _, name := range defaults.Apps() {
				if err := config.SaveApp(name); err != nil {
					return fmt.Errorf("save %s config: %w", name, err)
				}
			}
			dir, err := config.Dir()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", dir)
			return nil
		},
	})

	return cmd
}
