// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/brush/machine_test.go
// Summary: Tests for the pure Step transition function.

package brush

import "testing"

func effectTypes(effects []Effect) []string {
	out := make([]string, len(effects))
	for i, e := range effects {
		switch e.(type) {
		case AddIntercept:
			out[i] = "AddIntercept"
		case RemoveIntercept:
			out[i] = "RemoveIntercept"
		case ClearStyle:
			out[i] = "ClearStyle"
		case SetHighlight:
			out[i] = "SetHighlight"
		case PrepareMask:
			out[i] = "PrepareMask"
		case ShowMask:
			out[i] = "ShowMask"
		case HideMask:
			out[i] = "HideMask"
		case CancelAutoScroll:
			out[i] = "CancelAutoScroll"
		case CancelThrottle:
			out[i] = "CancelThrottle"
		case ArmAutoScroll:
			out[i] = "ArmAutoScroll"
		case RequestAutoScroll:
			out[i] = "RequestAutoScroll"
		case SetScrollOffset:
			out[i] = "SetScrollOffset"
		case Emit:
			out[i] = "Emit"
		case ShowTooltip:
			out[i] = "ShowTooltip"
		case Commit:
			out[i] = "Commit"
		case Follow:
			out[i] = "Follow"
		default:
			out[i] = "?"
		}
	}
	return out
}

func hasEffect(effects []Effect, name string) bool {
	for _, n := range effectTypes(effects) {
		if n == name {
			return true
		}
	}
	return false
}

func TestStep_InitialStateIgnoresMoves(t *testing.T) {
	v := newFakeSheet()
	s, effects := Step(Session{}, PointerMove{Point: Point{X: 50, Y: 50}}, v, DefaultConfig())
	if s.Stage != StageUnDragged {
		t.Errorf("expected UN_DRAGGED, got %v", s.Stage)
	}
	if len(effects) != 0 {
		t.Errorf("expected no effects, got %v", effectTypes(effects))
	}
}

func TestStep_DownArmsAndSnapshots(t *testing.T) {
	v := newFakeSheet()
	v.scroll = ScrollOffset{ScrollX: 20, ScrollY: 10}

	s, effects := Step(Session{}, PointerDown{Point: Point{X: 50, Y: 50}}, v, DefaultConfig())

	if s.Stage != StageClick {
		t.Fatalf("expected CLICK, got %v", s.Stage)
	}
	if s.Start.RowIndex != 6 || s.Start.ColIndex != 3 {
		t.Errorf("start cell = (%d,%d), want (6,3)", s.Start.RowIndex, s.Start.ColIndex)
	}
	if s.Start.ScrollX != 20 || s.Start.ScrollY != 10 {
		t.Errorf("start scroll not captured: %+v", s.Start)
	}
	if s.End != s.Start {
		t.Errorf("end should start at the start point")
	}
	if len(s.Displayed) == 0 {
		t.Error("expected displayed-cell snapshot")
	}
	if s.Delta.Active() {
		t.Error("expected scroll delta reset")
	}
	if !hasEffect(effects, "PrepareMask") {
		t.Errorf("expected PrepareMask, got %v", effectTypes(effects))
	}
}

func TestStep_DownSuppressed(t *testing.T) {
	tests := []struct {
		name  string
		setup func(v *fakeSheet)
		ev    PointerDown
	}{
		{"click intercept", func(v *fakeSheet) { v.intercepts[InterceptClick] = true }, PointerDown{Point: Point{X: 50, Y: 50}}},
		{"secondary button", func(v *fakeSheet) {}, PointerDown{Point: Point{X: 50, Y: 50}, Button: ButtonSecondary}},
		{"not on a cell", func(v *fakeSheet) {}, PointerDown{Point: Point{X: -5, Y: 50}}},
	}
	for _, tt := range tests {
		v := newFakeSheet()
		tt.setup(v)
		s, effects := Step(Session{}, tt.ev, v, DefaultConfig())
		if s.Stage != StageUnDragged || len(effects) != 0 {
			t.Errorf("%s: expected no transition, got stage %v effects %v", tt.name, s.Stage, effectTypes(effects))
		}
	}
}

func TestStep_MoveInsideCanvas(t *testing.T) {
	v := newFakeSheet()
	cfg := DefaultConfig()
	s, _ := Step(Session{}, PointerDown{Point: Point{X: 50, Y: 50}}, v, cfg)
	s, effects := Step(s, PointerMove{Point: Point{X: 90, Y: 75}}, v, cfg)

	if s.Stage != StageDragged {
		t.Fatalf("expected DRAGGED, got %v", s.Stage)
	}
	if s.End.RowIndex != 7 || s.End.ColIndex != 4 {
		t.Errorf("end cell = (%d,%d), want (7,4)", s.End.RowIndex, s.End.ColIndex)
	}
	got := effectTypes(effects)
	want := []string{"CancelAutoScroll", "CancelThrottle", "AddIntercept", "ClearStyle", "ShowMask", "SetHighlight"}
	if len(got) != len(want) {
		t.Fatalf("effects = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("effects = %v, want %v", got, want)
		}
	}
	hl := effects[len(effects)-1].(SetHighlight).State
	if hl.Name != StatePrepareSelect || !hl.Force {
		t.Errorf("expected forced prepare-select, got %+v", hl)
	}
	// rows 5..7 x cols 2..4
	if len(hl.CellIDs) != 9 {
		t.Errorf("expected 9 highlighted cells, got %d", len(hl.CellIDs))
	}
}

func TestStep_MoveOutsideRequestsAutoScroll(t *testing.T) {
	v := newFakeSheet()
	cfg := DefaultConfig()
	s, _ := Step(Session{}, PointerDown{Point: Point{X: 50, Y: 50}}, v, cfg)
	s, effects := Step(s, PointerMove{Point: Point{X: 50, Y: 140}}, v, cfg)

	if s.Stage != StageDragged {
		t.Errorf("expected DRAGGED, got %v", s.Stage)
	}
	if len(effects) != 2 {
		t.Fatalf("expected cancel + request, got %v", effectTypes(effects))
	}
	req, ok := effects[1].(RequestAutoScroll)
	if !ok {
		t.Fatalf("expected RequestAutoScroll, got %T", effects[1])
	}
	if req.Delta != (Point{X: 0, Y: 90}) {
		t.Errorf("delta = %+v, want (0,90)", req.Delta)
	}
	if s.End.X != 50 || s.End.Y != 50 {
		t.Errorf("end point must not move before the throttle runs: %+v", s.End)
	}
}

func TestStep_AutoScrollNoCellIsNoop(t *testing.T) {
	v := newFakeSheet()
	cfg := DefaultConfig()
	s, _ := Step(Session{}, PointerDown{Point: Point{X: 50, Y: 50}}, v, cfg)
	s.Stage = StageDragged
	v.rows = 0 // nothing resolves any more

	next, effects := Step(s, AutoScroll{Delta: Point{Y: 200}}, v, cfg)
	if len(effects) != 0 {
		t.Errorf("expected no effects, got %v", effectTypes(effects))
	}
	if next.End != s.End || next.Delta != s.Delta {
		t.Error("session mutated by unresolved auto-scroll")
	}
}

func TestStep_AutoScrollArmsTimer(t *testing.T) {
	v := newFakeSheet()
	cfg := DefaultConfig()
	s, _ := Step(Session{}, PointerDown{Point: Point{X: 50, Y: 50}}, v, cfg)
	s.Stage = StageDragged

	s, effects := Step(s, AutoScroll{Delta: Point{Y: 90}}, v, cfg)

	if !s.Delta.Y.Scroll || s.Delta.Y.Value != 90 {
		t.Errorf("expected vertical scroll recorded, got %+v", s.Delta)
	}
	if s.Delta.X.Scroll {
		t.Error("horizontal axis must not scroll")
	}
	if s.End.Y != 98 {
		t.Errorf("expected end clamped to 98, got %v", s.End.Y)
	}
	got := effectTypes(effects)
	tail := got[len(got)-3:]
	if tail[0] != "CancelAutoScroll" || tail[1] != "Follow" || tail[2] != "ArmAutoScroll" {
		t.Errorf("expected cancel-before-arm tail, got %v", got)
	}
}

func TestStep_TickIgnoredWhenIdle(t *testing.T) {
	v := newFakeSheet()
	_, effects := Step(Session{}, ScrollTick{}, v, DefaultConfig())
	if len(effects) != 0 {
		t.Errorf("expected no effects, got %v", effectTypes(effects))
	}
}

func TestStep_PureClickNeverSelects(t *testing.T) {
	v := newFakeSheet()
	cfg := DefaultConfig()
	s, _ := Step(Session{}, PointerDown{Point: Point{X: 50, Y: 50}}, v, cfg)
	s, effects := Step(s, PointerUp{Point: Point{X: 50, Y: 50}}, v, cfg)

	if s.Stage != StageUnDragged {
		t.Errorf("expected reset, got %v", s.Stage)
	}
	if hasEffect(effects, "Commit") {
		t.Error("pure click must not commit")
	}
	if !hasEffect(effects, "HideMask") {
		t.Error("expected mask hidden")
	}
	if effectTypes(effects)[0] != "CancelAutoScroll" {
		t.Error("release must cancel auto-scroll first")
	}
}

func TestStep_CommitEffectOrder(t *testing.T) {
	v := newFakeSheet()
	cfg := DefaultConfig()
	s, _ := Step(Session{}, PointerDown{Point: Point{X: 50, Y: 50}}, v, cfg)
	s, _ = Step(s, PointerMove{Point: Point{X: 90, Y: 75}}, v, cfg)
	_, effects := Step(s, PointerUp{Point: Point{X: 90, Y: 75}}, v, cfg)

	got := effectTypes(effects)
	want := []string{
		"CancelAutoScroll", "CancelThrottle",
		"AddIntercept", "SetHighlight", "Commit", "Emit", "Emit", "ShowTooltip",
		"HideMask",
	}
	if len(got) != len(want) {
		t.Fatalf("effects = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("effects = %v, want %v", got, want)
		}
	}
	if k := effects[2].(AddIntercept).Kind; k != InterceptBrushSelection {
		t.Errorf("expected brush-selection intercept, got %v", k)
	}
	if n := effects[3].(SetHighlight).State.Name; n != StateSelected {
		t.Errorf("expected selected state, got %v", n)
	}
}

func TestStep_ContextMenuResets(t *testing.T) {
	v := newFakeSheet()
	cfg := DefaultConfig()
	s, _ := Step(Session{}, PointerDown{Point: Point{X: 50, Y: 50}}, v, cfg)
	s, _ = Step(s, PointerMove{Point: Point{X: 90, Y: 75}}, v, cfg)
	s, effects := Step(s, ContextMenu{}, v, cfg)

	if s.Stage != StageUnDragged {
		t.Errorf("expected reset, got %v", s.Stage)
	}
	if hasEffect(effects, "Commit") {
		t.Error("context menu must not commit")
	}
	var removedHover bool
	for _, e := range effects {
		if r, ok := e.(RemoveIntercept); ok && r.Kind == InterceptHover {
			removedHover = true
		}
	}
	if !removedHover {
		t.Error("expected hover intercept released")
	}
}

func TestStage_String(t *testing.T) {
	if StageDragged.String() != "DRAGGED" || StageUnDragged.String() != "UN_DRAGGED" || StageClick.String() != "CLICK" {
		t.Error("unexpected stage names")
	}
}
