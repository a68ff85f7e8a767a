// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/mouse_coordinator.go
// Summary: Turns tcell mouse reports into brush engine events.

package pivotgrid

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/apps/pivotgrid/brush"
)

// EventSink receives brush events. *brush.Engine implements it.
type EventSink interface {
	Handle(ev brush.Event)
}

// GridTarget is the part of the sheet the coordinator touches directly.
type GridTarget interface {
	ScrollBy(dx, dy float64)
	SetHover(p brush.Point)
}

// MouseCoordinator tracks button transitions across tcell mouse reports.
// tcell reports button state, not presses, so a press is a report where
// Button1 is set and was not set in the previous one.
//
// Coordinates are translated by the grid origin. Motion is forwarded while
// the button is held even when it leaves the grid, so the engine can decide
// to auto-scroll.
type MouseCoordinator struct {
	sink EventSink
	grid GridTarget

	originX, originY int

	// Wheel steps in canvas units.
	wheelStepX, wheelStepY float64

	lastButtons tcell.ButtonMask
	dragging    bool
}

// NewMouseCoordinator creates a coordinator for a grid drawn at (0,0).
func NewMouseCoordinator(sink EventSink, grid GridTarget, wheelStepX, wheelStepY float64) *MouseCoordinator {
	if wheelStepX <= 0 {
		wheelStepX = 1
	}
	if wheelStepY <= 0 {
		wheelStepY = 1
	}
	return &MouseCoordinator{
		sink:       sink,
		grid:       grid,
		wheelStepX: wheelStepX,
		wheelStepY: wheelStepY,
	}
}

// SetOrigin moves the grid origin in screen coordinates.
func (m *MouseCoordinator) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// Dragging reports whether Button1 is held since a press inside the grid.
func (m *MouseCoordinator) Dragging() bool {
	return m.dragging
}

// HandleMouse processes one report and returns true if it was consumed.
func (m *MouseCoordinator) HandleMouse(ev *tcell.EventMouse) bool {
	if ev == nil {
		return false
	}
	x, y := ev.Position()
	buttons := ev.Buttons()
	prev := m.lastButtons
	m.lastButtons = buttons &^ wheelMask
	p := brush.Point{X: float64(x - m.originX), Y: float64(y - m.originY)}

	if dx, dy := wheelDeltaFromMask(buttons); dx != 0 || dy != 0 {
		m.grid.ScrollBy(float64(dx)*m.wheelStepX, float64(dy)*m.wheelStepY)
		if m.dragging {
			// Keep the live rectangle in sync with the new offset.
			m.sink.Handle(brush.PointerMove{Point: p})
		}
		return true
	}

	press := buttons&tcell.Button1 != 0 && prev&tcell.Button1 == 0
	release := buttons&tcell.Button1 == 0 && prev&tcell.Button1 != 0
	held := buttons&tcell.Button1 != 0 && prev&tcell.Button1 != 0

	switch {
	case press:
		m.dragging = true
		m.sink.Handle(brush.PointerDown{Point: p, Button: brush.ButtonPrimary})
		return true
	case held && m.dragging:
		m.sink.Handle(brush.PointerMove{Point: p})
		return true
	case release && m.dragging:
		m.dragging = false
		m.sink.Handle(brush.PointerUp{Point: p, Button: brush.ButtonPrimary})
		return true
	}

	if buttons&tcell.Button3 != 0 && prev&tcell.Button3 == 0 {
		m.dragging = false
		m.sink.Handle(brush.ContextMenu{})
		return true
	}

	if buttons == tcell.ButtonNone {
		m.grid.SetHover(p)
		return true
	}
	return false
}

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

// wheelDeltaFromMask extracts wheel delta from button mask.
func wheelDeltaFromMask(mask tcell.ButtonMask) (int, int) {
	dx, dy := 0, 0
	if mask&tcell.WheelUp != 0 {
		dy--
	}
	if mask&tcell.WheelDown != 0 {
		dy++
	}
	if mask&tcell.WheelLeft != 0 {
		dx--
	}
	if mask&tcell.WheelRight != 0 {
		dx++
	}
	return dx, dy
}
