// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: System and per-app JSON configuration store for texelgrid.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

// Store holds the system config and the app configs of one config directory.
// Files are read on first use; a missing file is created from the embedded
// defaults.
type Store struct {
	dir string

	mu     sync.RWMutex
	loaded bool
	system Config
	apps   map[string]Config
	err    error
}

// NewStore returns a store rooted at dir. An empty dir resolves to Dir() when
// the store is first used.
func NewStore(dir string) *Store {
	return &Store{dir: dir, apps: make(map[string]Config)}
}

var std = NewStore("")

// Err returns the most recent system config load error.
func Err() error { return std.Err() }

// System returns the system configuration (texelgrid.json).
func System() Config { return std.System() }

// App returns the config for a named app (apps/<app>/config.json).
func App(name string) Config { return std.App(name) }

// Reload rereads the system config and every cached app config.
func Reload() error { return std.Reload() }

// SaveSystem writes the system config to disk.
func SaveSystem() error { return std.SaveSystem() }

// SaveApp writes a named app config to disk.
func SaveApp(name string) error { return std.SaveApp(name) }

// SetSystem replaces the in-memory system config.
func SetSystem(cfg Config) { std.SetSystem(cfg) }

// SetApp replaces the in-memory config of an app.
func SetApp(name string, cfg Config) { std.SetApp(name, cfg) }

func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	return s.err
}

func (s *Store) System() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	return s.system
}

// App returns the named app config, loading it on first use. Load failures
// are logged and leave the app with its built-in defaults.
func (s *Store) App(name string) Config {
	if name == "" {
		return nil
	}
	s.mu.RLock()
	cfg, ok := s.apps[name]
	s.mu.RUnlock()
	if ok {
		return cfg
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	if cfg, ok := s.apps[name]; ok {
		return cfg
	}
	cfg, err := s.loadAppLocked(name)
	if err != nil {
		log.Printf("Config: Failed to load app %q config: %v", name, err)
		if cfg == nil {
			cfg = make(Config)
			applyAppDefaults(name, cfg)
		}
	}
	s.apps[name] = cfg
	return cfg
}

func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.system, s.err = s.loadSystemLocked()
	for name := range s.apps {
		cfg, err := s.loadAppLocked(name)
		if err != nil {
			log.Printf("Config: Failed to reload app %q config: %v", name, err)
			continue
		}
		s.apps[name] = cfg
	}
	return s.err
}

func (s *Store) SaveSystem() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	path, err := s.systemPath()
	if err != nil {
		return err
	}
	return writeConfig(path, s.system)
}

// SaveApp writes the app config, creating it from defaults when the app was
// never loaded.
func (s *Store) SaveApp(name string) error {
	if name == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	cfg := s.apps[name]
	if cfg == nil {
		cfg = defaultAppConfig(name)
		if cfg == nil {
			cfg = make(Config)
		}
		applyAppDefaults(name, cfg)
		s.apps[name] = cfg
	}
	path, err := s.appPath(name)
	if err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

func (s *Store) SetSystem(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	if cfg == nil {
		cfg = make(Config)
	}
	s.system = Clone(cfg)
}

func (s *Store) SetApp(name string, cfg Config) {
	if name == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	s.apps[name] = Clone(cfg)
}

func (s *Store) ensureLocked() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.system, s.err = s.loadSystemLocked()
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
