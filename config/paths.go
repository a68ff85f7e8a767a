// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Locations of the texelgrid config files.

package config

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	systemConfigName = "texelgrid.json"

	// DirEnv overrides the config directory.
	DirEnv = "TEXELGRID_CONFIG_DIR"
)

// Dir returns the texelgrid config directory: $TEXELGRID_CONFIG_DIR when set,
// otherwise texelgrid/ under the user config dir.
func Dir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelgrid"), nil
}

// Files returns the system config path followed by the app config paths of
// the given apps.
func Files(apps ...string) ([]string, error) {
	paths := make([]string, 0, len(apps)+1)
	p, err := std.systemPath()
	if err != nil {
		return nil, err
	}
	paths = append(paths, p)
	for _, app := range apps {
		if p, err = std.appPath(app); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (s *Store) root() (string, error) {
	if s.dir != "" {
		return s.dir, nil
	}
	return Dir()
}

func (s *Store) systemPath() (string, error) {
	root, err := s.root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

func (s *Store) appPath(app string) (string, error) {
	if app == "" {
		return "", errors.New("app name is required")
	}
	root, err := s.root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "apps", app, "config.json"), nil
}
