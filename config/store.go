// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: File loading for the config store: seeding, migration, defaults.

package config

import "log"

// seedFunc builds the content of a config file that is missing or empty. The
// bool reports whether the result should be written back.
type seedFunc func() (Config, bool)

// loadFile reads path, seeds it when it holds nothing and fills missing keys
// with apply. A read error keeps the seeded config in memory but is returned.
func loadFile(path string, seed seedFunc, apply func(Config)) (Config, error) {
	cfg, exists, err := readConfig(path)
	if err != nil {
		log.Printf("Config: Failed to read %s: %v", path, err)
		cfg = nil
	}

	if len(cfg) == 0 {
		seeded, write := seed()
		if seeded == nil {
			seeded = make(Config)
		}
		apply(seeded)
		// Never overwrite a file that failed to parse.
		if write && err == nil {
			if werr := writeConfig(path, seeded); werr != nil {
				log.Printf("Config: Failed to write %s: %v", path, werr)
				err = werr
			}
		}
		return seeded, err
	}

	apply(cfg)
	if exists {
		log.Printf("Config: Loaded %s", path)
	}
	return cfg, nil
}

func (s *Store) loadSystemLocked() (Config, error) {
	path, err := s.systemPath()
	if err != nil {
		log.Printf("Config: Failed to resolve system config path: %v", err)
		cfg := make(Config)
		applySystemDefaults(cfg)
		return cfg, err
	}
	seed := func() (Config, bool) { return defaultSystemConfig(), true }
	return loadFile(path, seed, applySystemDefaults)
}

func (s *Store) loadAppLocked(name string) (Config, error) {
	path, err := s.appPath(name)
	if err != nil {
		return nil, err
	}
	seed := func() (Config, bool) {
		cfg := make(Config)
		if migrateAppFromSystem(name, s.system, cfg) {
			log.Printf("Config: Moved %q sections from %s to %s", name, systemConfigName, path)
			return cfg, true
		}
		if def := defaultAppConfig(name); def != nil {
			return def, true
		}
		return cfg, false
	}
	apply := func(cfg Config) { applyAppDefaults(name, cfg) }
	return loadFile(path, seed, apply)
}
