// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration files for texelgrid.

package defaults

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed texelgrid.json apps/*/config.json
var files embed.FS

// SystemConfig returns the embedded texelgrid.json.
func SystemConfig() ([]byte, error) {
	return files.ReadFile("texelgrid.json")
}

// AppConfig returns the embedded config JSON for the named app.
func AppConfig(app string) ([]byte, error) {
	if app == "" {
		return nil, fmt.Errorf("app name is required")
	}
	return files.ReadFile(fmt.Sprintf("apps/%s/config.json", app))
}

// Apps lists the apps that ship embedded defaults, sorted.
func Apps() []string {
	entries, err := fs.ReadDir(files, "apps")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}
