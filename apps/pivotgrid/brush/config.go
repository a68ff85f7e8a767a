// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/brush/config.go
// Summary: Tunables for brush selection and auto-scroll.

package brush

import "time"

// Config provides configuration values for the brush engine.
// This is injected rather than read from global config, enabling testability.
type Config struct {
	// ThrottleInterval bounds how often out-of-canvas moves are processed.
	// Default: 30ms
	ThrottleInterval time.Duration
	// ScrollInterval is the period of the repeating auto-scroll timer.
	// Default: 300ms
	ScrollInterval time.Duration
	// StepX is the horizontal auto-scroll step in pixels.
	// Default: 100
	StepX float64
	// StepY is the vertical auto-scroll step in pixels.
	// Default: 30
	StepY float64
	// MinMoveDistance is the drag size a selection must exceed on one axis.
	// Default: 5
	MinMoveDistance float64
	// EdgeMargin keeps clamped endpoints inside the panel.
	// Default: 2
	EdgeMargin float64
	// Verbose logs commits and dropped ticks.
	Verbose bool
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.ThrottleInterval <= 0 {
		c.ThrottleInterval = 30 * time.Millisecond
	}
	if c.ScrollInterval <= 0 {
		c.ScrollInterval = 300 * time.Millisecond
	}
	if c.StepX <= 0 {
		c.StepX = 100
	}
	if c.StepY <= 0 {
		c.StepY = 30
	}
	if c.MinMoveDistance <= 0 {
		c.MinMoveDistance = 5
	}
	if c.EdgeMargin <= 0 {
		c.EdgeMargin = 2
	}
	return c
}
