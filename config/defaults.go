// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for system and app configuration files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"defaultApp": "pivotgrid",
		"log_file":   "",
	})
	cfg.RegisterDefaults("colors", Section{
		"header_bg":      "#313244",
		"header_fg":      "#cdd6f4",
		"cell_fg":        "#cdd6f4",
		"empty_fg":       "#6c7086",
		"hover_bg":       "#45475a",
		"prepare_bg":     "#585b70",
		"selected_bg":    "#1e66f5",
		"selected_fg":    "#eff1f5",
		"mask_bg":        "#7f849c",
		"status_bg":      "#181825",
		"scrollbar_fg":   "#9399b2",
		"background":     "#1e1e2e",
		"grid_line":      "#45475a",
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "pivotgrid":
		cfg.RegisterDefaults("pivotgrid", Section{
			"verbose": false,
		})
		cfg.RegisterDefaults("pivotgrid.brush", Section{
			"throttle_ms":        30,
			"scroll_interval_ms": 300,
			"scroll_step_x":      12,
			"scroll_step_y":      3,
			"min_move_distance":  1,
			"edge_margin":        1,
		})
		cfg.RegisterDefaults("pivotgrid.layout", Section{
			"row_header_width":  16,
			"col_header_height": 2,
			"col_width":         12,
			"row_height":        1,
		})
		cfg.RegisterDefaults("pivotgrid.snapshot", Section{
			"throttle_ms":        30,
			"scroll_interval_ms": 300,
			"scroll_step_x":      100,
			"scroll_step_y":      30,
			"min_move_distance":  5,
			"edge_margin":        2,
			"width":              800,
			"height":             480,
			"row_header_width":   140,
			"col_header_height":  48,
			"col_width":          100,
			"row_height":         24,
		})
	}
}
