// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Loads and caches parsed defaults from embedded JSON files.
// The embedded JSON files in defaults/ are the single source of truth.

package config

import (
	"encoding/json"
	"sync"

	"github.com/framegrace/texelgrid/defaults"
)

var (
	embeddedSystemOnce sync.Once
	embeddedSystem     Config
	embeddedSystemErr  error

	embeddedApps   = make(map[string]Config)
	embeddedAppsMu sync.RWMutex
)

// embeddedSystemDefaults returns the parsed system defaults, cached.
func embeddedSystemDefaults() (Config, error) {
	embeddedSystemOnce.Do(func() {
		data, err := defaults.SystemConfig()
		if err != nil {
			embeddedSystemErr = err
			return
		}
		embeddedSystem, embeddedSystemErr = parseDefaults(data)
	})
	return embeddedSystem, embeddedSystemErr
}

// embeddedAppDefaults returns the parsed app defaults, cached per app. An app
// without embedded defaults yields nil, nil.
func embeddedAppDefaults(app string) (Config, error) {
	embeddedAppsMu.RLock()
	cfg, ok := embeddedApps[app]
	embeddedAppsMu.RUnlock()
	if ok {
		return cfg, nil
	}

	data, err := defaults.AppConfig(app)
	if err != nil {
		return nil, nil
	}
	cfg, err = parseDefaults(data)
	if err != nil {
		return nil, err
	}

	embeddedAppsMu.Lock()
	embeddedApps[app] = cfg
	embeddedAppsMu.Unlock()
	return cfg, nil
}

func parseDefaults(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultSystemConfig returns a copy of the embedded system defaults, or nil.
func defaultSystemConfig() Config {
	cfg, err := embeddedSystemDefaults()
	if err != nil {
		return nil
	}
	return Clone(cfg)
}

// defaultAppConfig returns a copy of the embedded app defaults, or nil.
func defaultAppConfig(app string) Config {
	cfg, err := embeddedAppDefaults(app)
	if err != nil {
		return nil
	}
	return Clone(cfg)
}
