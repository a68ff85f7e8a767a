// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/migrate.go
// Summary: Moves app sections that older releases kept in texelgrid.json.

package config

import "strings"

// migrateAppFromSystem copies "<app>" and "<app>.*" sections from the system
// config into a fresh app config. Older releases had a single file.
func migrateAppFromSystem(app string, sys Config, cfg Config) bool {
	if app == "" || sys == nil || cfg == nil {
		return false
	}
	migrated := false
	for name := range sys {
		if name != app && !strings.HasPrefix(name, app+".") {
			continue
		}
		if sys.Section(name) == nil {
			continue
		}
		if copySection(cfg, sys, name) {
			migrated = true
		}
	}
	return migrated
}

func copySection(dst Config, src Config, name string) bool {
	if dst == nil || src == nil || name == "" {
		return false
	}
	if _, ok := dst[name]; ok {
		return false
	}
	if section := src.Section(name); section != nil {
		out := make(Section, len(section))
		for k, v := range section {
			out[k] = v
		}
		dst[name] = out
		return true
	}
	return false
}
