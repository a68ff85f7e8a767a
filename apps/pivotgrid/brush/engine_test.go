// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/brush/engine_test.go
// Summary: Engine tests with a manual clock: commit rules, auto-scroll, throttle.

package brush

import (
	"testing"
	"time"
)

func newTestEngine(t *testing.T) (*Engine, *fakeSheet, *ManualClock) {
	t.Helper()
	sheet := newFakeSheet()
	clock := NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewEngine(sheet, Config{}, WithClock(clock)), sheet, clock
}

func TestEngine_DefaultsApplied(t *testing.T) {
	e, _, _ := newTestEngine(t)
	cfg := e.Config()
	if cfg.ThrottleInterval != 30*time.Millisecond || cfg.ScrollInterval != 300*time.Millisecond {
		t.Errorf("unexpected intervals: %v %v", cfg.ThrottleInterval, cfg.ScrollInterval)
	}
	if cfg.StepX != 100 || cfg.StepY != 30 || cfg.MinMoveDistance != 5 || cfg.EdgeMargin != 2 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestEngine_CustomConfigPreserved(t *testing.T) {
	e := NewEngine(newFakeSheet(), Config{StepX: 40, MinMoveDistance: 12})
	if e.Config().StepX != 40 || e.Config().MinMoveDistance != 12 {
		t.Errorf("custom config lost: %+v", e.Config())
	}
}

func TestEngine_ValidityThreshold(t *testing.T) {
	tests := []struct {
		name   string
		end    Point
		commit bool
	}{
		{"within threshold both axes", Point{X: 53, Y: 54}, false},
		{"exactly threshold", Point{X: 55, Y: 55}, false},
		{"beyond on x", Point{X: 56, Y: 50}, true},
		{"beyond on y", Point{X: 50, Y: 44}, true},
	}
	for _, tt := range tests {
		e, sheet, _ := newTestEngine(t)
		e.Handle(PointerDown{Point: Point{X: 50, Y: 50}})
		e.Handle(PointerMove{Point: tt.end})
		if e.Stage() != StageDragged {
			t.Fatalf("%s: expected DRAGGED, got %v", tt.name, e.Stage())
		}
		e.Handle(PointerUp{Point: tt.end})

		committed := len(sheet.emits[EventGlobalSelected]) == 1
		if committed != tt.commit {
			t.Errorf("%s: committed=%v, want %v", tt.name, committed, tt.commit)
		}
		if sheet.intercepts[InterceptBrushSelection] != tt.commit {
			t.Errorf("%s: brush intercept=%v, want %v", tt.name, sheet.intercepts[InterceptBrushSelection], tt.commit)
		}
		if e.Stage() != StageUnDragged {
			t.Errorf("%s: expected reset after release, got %v", tt.name, e.Stage())
		}
		if sheet.maskVisible {
			t.Errorf("%s: mask still visible after release", tt.name)
		}
	}
}

func TestEngine_CommitSelection(t *testing.T) {
	e, sheet, _ := newTestEngine(t)
	e.Handle(PointerDown{Point: Point{X: 50, Y: 50}}) // row 5, col 2
	e.Handle(PointerMove{Point: Point{X: 90, Y: 75}}) // row 7, col 4
	e.Handle(PointerUp{Point: Point{X: 90, Y: 75}})

	sel := e.Selection()
	if len(sel) != 9 {
		t.Fatalf("expected 9 selected cells, got %d", len(sel))
	}
	hl := sheet.lastHighlight()
	if hl.Name != StateSelected || len(hl.CellIDs) != 9 {
		t.Errorf("expected selected state with 9 ids, got %+v", hl)
	}
	if hl.CellIDs[0] != "5-c2" || hl.CellIDs[8] != "7-c4" {
		t.Errorf("unexpected id order: %v", hl.CellIDs)
	}
	if got := len(sheet.emits[EventDataCellBrushSelection]); got != 1 {
		t.Errorf("expected one brush-selection event, got %d", got)
	}
	if got := len(sheet.emits[EventDataCellBrushSelection][0]); got != 9 {
		t.Errorf("expected 9 rendered cells in payload, got %d", got)
	}
	if len(sheet.tooltips) != 1 {
		t.Errorf("expected tooltip request, got %d", len(sheet.tooltips))
	}
	if !sheet.intercepts[InterceptHover] {
		t.Error("non-empty selection must keep the hover intercept")
	}
}

func TestEngine_EmptySelectionReleasesHover(t *testing.T) {
	e, sheet, _ := newTestEngine(t)
	sheet.empty = func(row, col int) bool { return true }

	e.Handle(PointerDown{Point: Point{X: 50, Y: 50}})
	e.Handle(PointerMove{Point: Point{X: 95, Y: 75}})
	if !sheet.intercepts[InterceptHover] {
		t.Fatal("expected hover intercept during drag")
	}
	hl := sheet.lastHighlight()
	if hl.Name != StatePrepareSelect || !hl.Force || len(hl.CellIDs) != 0 {
		t.Errorf("expected forced empty prepare-select, got %+v", hl)
	}

	e.Handle(PointerUp{Point: Point{X: 95, Y: 75}})

	if len(sheet.emits[EventGlobalSelected]) != 1 {
		t.Fatal("expected commit")
	}
	if sheet.intercepts[InterceptHover] {
		t.Error("empty selection must release the hover intercept")
	}
	if len(e.Selection()) != 9 {
		t.Errorf("logical selection should still cover 3x3 cells, got %d", len(e.Selection()))
	}
}

func TestEngine_ClickInterceptSuppressesArming(t *testing.T) {
	e, sheet, _ := newTestEngine(t)
	sheet.intercepts[InterceptClick] = true

	e.Handle(PointerDown{Point: Point{X: 50, Y: 50}})
	e.Handle(PointerMove{Point: Point{X: 120, Y: 80}})
	e.Handle(PointerUp{Point: Point{X: 120, Y: 80}})

	if sheet.maskPrepared != 0 || len(sheet.highlights) != 0 || len(sheet.emits) != 0 {
		t.Error("engine must stay idle while a click intercept is active")
	}
}

func TestEngine_ScrollCorrectionDuringDrag(t *testing.T) {
	e, sheet, _ := newTestEngine(t)
	e.Handle(PointerDown{Point: Point{X: 50, Y: 50}}) // row 5

	sheet.SetScrollOffset(ScrollOffset{ScrollY: 30}, false)
	e.Handle(PointerMove{Point: Point{X: 50, Y: 50}}) // row 8 now under the pointer

	r := e.Range()
	if r.Start.Y != 20 || r.End.Y != 50 {
		t.Errorf("pixel range = %v..%v, want 20..50", r.Start.Y, r.End.Y)
	}
	if r.Start.RowIndex != 5 || r.End.RowIndex != 8 {
		t.Errorf("logical range = %d..%d, want 5..8", r.Start.RowIndex, r.End.RowIndex)
	}
	last := sheet.maskShown[len(sheet.maskShown)-1]
	if last.Y != 20 || last.Height != 30 {
		t.Errorf("mask = %+v, want y=20 h=30", last)
	}
}

func TestEngine_AutoScrollConvergence(t *testing.T) {
	e, sheet, clock := newTestEngine(t)
	e.Handle(PointerDown{Point: Point{X: 100, Y: 50}}) // row 5, col 5
	e.Handle(PointerMove{Point: Point{X: 250, Y: 50}}) // beyond the right edge

	if !e.AutoScrollActive() {
		t.Fatal("expected auto-scroll timer after leaving the canvas")
	}
	if clock.Pending() != 1 {
		t.Fatalf("expected exactly one live timer, got %d", clock.Pending())
	}
	// The first tick fires immediately.
	if sheet.scroll.ScrollX != 100 {
		t.Errorf("expected immediate horizontal step, scrollX=%v", sheet.scroll.ScrollX)
	}

	clock.Advance(900 * time.Millisecond)

	if sheet.scroll.ScrollX != 400 {
		t.Errorf("expected scrollX=400 after three more ticks, got %v", sheet.scroll.ScrollX)
	}
	if sheet.scroll.ScrollY != 0 {
		t.Errorf("vertical offset must not change, got %v", sheet.scroll.ScrollY)
	}
	if got := e.Session().End.ColIndex; got != 29 {
		t.Errorf("end column = %d, want 29", got)
	}
	if clock.Pending() != 1 {
		t.Errorf("expected one live timer while scrolling, got %d", clock.Pending())
	}

	e.Handle(PointerUp{Point: Point{X: 250, Y: 50}})

	if e.AutoScrollActive() || e.ThrottlePending() {
		t.Error("timers still live after release")
	}
	if clock.Pending() != 0 {
		t.Errorf("expected zero live timers, got %d", clock.Pending())
	}
	sel := e.Selection()
	if len(sel) != 25 {
		t.Errorf("expected 25 selected cells (cols 5..29), got %d", len(sel))
	}

	before := len(sheet.scrollSets)
	clock.Advance(2 * time.Second)
	if len(sheet.scrollSets) != before {
		t.Error("scrolling continued after release")
	}
}

func TestEngine_AutoScrollUpClampsAtTop(t *testing.T) {
	e, sheet, clock := newTestEngine(t)
	sheet.scroll = ScrollOffset{ScrollY: 60}
	e.Handle(PointerDown{Point: Point{X: 50, Y: 50}})
	e.Handle(PointerMove{Point: Point{X: 50, Y: -30}})

	if sheet.scroll.ScrollY != 30 {
		t.Fatalf("expected one step up, scrollY=%v", sheet.scroll.ScrollY)
	}
	clock.Advance(600 * time.Millisecond)
	if sheet.scroll.ScrollY != 0 {
		t.Errorf("expected scroll clamped at top, got %v", sheet.scroll.ScrollY)
	}
	if got := e.Session().End.RowIndex; got != 0 {
		t.Errorf("end row = %d, want 0", got)
	}
	e.Handle(ContextMenu{})
	if clock.Pending() != 0 || e.Stage() != StageUnDragged {
		t.Error("context menu must cancel timers and reset")
	}
}

func TestEngine_MoveBackInsideStopsAutoScroll(t *testing.T) {
	e, sheet, clock := newTestEngine(t)
	e.Handle(PointerDown{Point: Point{X: 50, Y: 50}})
	e.Handle(PointerMove{Point: Point{X: 50, Y: 150}})
	if !e.AutoScrollActive() {
		t.Fatal("expected auto-scroll")
	}

	clock.Advance(40 * time.Millisecond)
	e.Handle(PointerMove{Point: Point{X: 60, Y: 60}})

	if e.AutoScrollActive() || clock.Pending() != 0 {
		t.Error("move inside the canvas must cancel auto-scroll")
	}
	before := sheet.scroll
	clock.Advance(time.Second)
	if sheet.scroll != before {
		t.Error("scroll changed after auto-scroll was cancelled")
	}
}

func TestEngine_ThrottleCoalescesBursts(t *testing.T) {
	e, sheet, clock := newTestEngine(t)
	e.Handle(PointerDown{Point: Point{X: 100, Y: 50}})
	e.Handle(PointerMove{Point: Point{X: 250, Y: 50}})
	if len(sheet.scrollSets) != 1 {
		t.Fatalf("expected leading delta processed, got %d scroll updates", len(sheet.scrollSets))
	}

	clock.Advance(10 * time.Millisecond)
	e.Handle(PointerMove{Point: Point{X: 260, Y: 60}})
	e.Handle(PointerMove{Point: Point{X: 270, Y: 60}})

	if len(sheet.scrollSets) != 1 {
		t.Errorf("deltas inside the window must not be processed, got %d scroll updates", len(sheet.scrollSets))
	}
	if !e.ThrottlePending() {
		t.Fatal("expected trailing delta pending")
	}
	if clock.Pending() != 1 {
		t.Errorf("expected only the throttle timer live, got %d", clock.Pending())
	}

	clock.Advance(20 * time.Millisecond)

	if len(sheet.scrollSets) != 2 {
		t.Errorf("expected trailing delta processed once, got %d scroll updates", len(sheet.scrollSets))
	}
	if e.ThrottlePending() {
		t.Error("trailing delta should have been delivered")
	}
	if !e.AutoScrollActive() || clock.Pending() != 1 {
		t.Errorf("expected one repeating timer after trailing delta, live=%d", clock.Pending())
	}

	e.Handle(PointerUp{Point: Point{X: 270, Y: 60}})
	if clock.Pending() != 0 {
		t.Errorf("expected zero live timers, got %d", clock.Pending())
	}
}

func TestEngine_ReleaseDropsTrailingDelta(t *testing.T) {
	e, sheet, clock := newTestEngine(t)
	e.Handle(PointerDown{Point: Point{X: 100, Y: 50}})
	e.Handle(PointerMove{Point: Point{X: 250, Y: 50}})
	clock.Advance(5 * time.Millisecond)
	e.Handle(PointerMove{Point: Point{X: 260, Y: 50}})
	e.Handle(PointerUp{Point: Point{X: 260, Y: 50}})

	updates := len(sheet.scrollSets)
	clock.Advance(time.Second)
	if len(sheet.scrollSets) != updates {
		t.Error("trailing delta fired after release")
	}
	if clock.Pending() != 0 {
		t.Errorf("expected zero live timers, got %d", clock.Pending())
	}
}

func TestEngine_StaleTickDropped(t *testing.T) {
	e, sheet, _ := newTestEngine(t)
	e.Handle(PointerDown{Point: Point{X: 100, Y: 50}})
	e.Handle(PointerMove{Point: Point{X: 250, Y: 50}})
	staleGen := e.gen
	e.Handle(PointerMove{Point: Point{X: 150, Y: 50}}) // back inside: cancels

	updates := len(sheet.scrollSets)
	e.Handle(ScrollTick{Gen: staleGen})
	if len(sheet.scrollSets) != updates {
		t.Error("stale tick scrolled the sheet")
	}
	if e.AutoScrollActive() {
		t.Error("stale tick re-armed the timer")
	}
}

func TestEngine_TickWithoutCellKeepsTimer(t *testing.T) {
	e, sheet, clock := newTestEngine(t)
	sheet.rows = 12
	e.Handle(PointerDown{Point: Point{X: 50, Y: 50}})
	e.Handle(PointerMove{Point: Point{X: 50, Y: 150}})

	end := e.Session().End
	sheet.rows = 0
	clock.Advance(300 * time.Millisecond)

	if e.Session().End != end {
		t.Error("unresolved tick must not change the end point")
	}
	if !e.AutoScrollActive() {
		t.Error("timer must keep running after an unresolved tick")
	}
	e.Reset()
	if clock.Pending() != 0 {
		t.Errorf("reset left %d timers", clock.Pending())
	}
}

func TestEngine_WithoutMask(t *testing.T) {
	sheet := newFakeSheet()
	e := NewEngine(struct{ Sheet }{sheet}, Config{}, WithClock(NewManualClock(time.Now())))
	e.Handle(PointerDown{Point: Point{X: 50, Y: 50}})
	e.Handle(PointerMove{Point: Point{X: 90, Y: 90}})
	e.Handle(PointerUp{Point: Point{X: 90, Y: 90}})
	if len(e.Selection()) == 0 {
		t.Error("expected selection without a mask")
	}
	if sheet.maskPrepared != 0 {
		t.Error("mask calls must be skipped when the sheet has no mask")
	}
}

func TestEngine_WallClockTimersSerializeWithPointerEvents(t *testing.T) {
	sheet := newFakeSheet()
	e := NewEngine(sheet, Config{
		ThrottleInterval: time.Millisecond,
		ScrollInterval:   time.Millisecond,
	})

	e.Handle(PointerDown{Point: Point{X: 50, Y: 50}})
	deadline := time.Now().Add(50 * time.Millisecond)
	for i := 0; time.Now().Before(deadline); i++ {
		if i%2 == 0 {
			e.Handle(PointerMove{Point: Point{X: 50, Y: 150}})
		} else {
			e.Handle(PointerMove{Point: Point{X: 60, Y: 60}})
		}
		time.Sleep(100 * time.Microsecond)
	}
	e.Handle(PointerMove{Point: Point{X: 50, Y: 150}})
	time.Sleep(5 * time.Millisecond)
	e.Handle(PointerUp{Point: Point{X: 50, Y: 150}})

	if e.AutoScrollActive() || e.ThrottlePending() {
		t.Error("timers still live after release")
	}
	if len(sheet.scrollSets) == 0 {
		t.Error("expected at least one auto-scroll step")
	}
	if len(e.Selection()) == 0 {
		t.Error("expected a committed selection")
	}

	before := len(sheet.scrollSets)
	time.Sleep(10 * time.Millisecond)
	e.Handle(PointerMove{Point: Point{X: 70, Y: 70}})
	if len(sheet.scrollSets) != before {
		t.Error("scrolling continued after release")
	}
}
