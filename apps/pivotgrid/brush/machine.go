// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/brush/machine.go
// Summary: Pure brush state machine: (session, event) -> (session, effects).
//
// Step never mutates collaborators. It may query the read-only View; every
// side effect is returned as an Effect and applied, in order, by the Engine.

package brush

// Session is the state of one drag gesture.
type Session struct {
	Stage Stage
	Start BrushPoint
	End   BrushPoint
	Delta ScrollDelta
	// Displayed is the rendered-cell snapshot used for live highlight.
	Displayed []CellMeta
	// Highlighted holds the rendered cells inside the range at the last projection.
	Highlighted []CellMeta
}

// Active reports whether a gesture is armed or dragging.
func (s Session) Active() bool {
	return s.Stage != StageUnDragged
}

// Event is an input to Step.
type Event interface{ isEvent() }

// PointerDown is a button press on the canvas.
type PointerDown struct {
	Point  Point
	Button Button
}

// PointerMove is a global pointer move; Point may lie outside the canvas.
type PointerMove struct {
	Point Point
}

// PointerUp is a global button release.
type PointerUp struct {
	Point  Point
	Button Button
}

// ContextMenu is a global context-menu open.
type ContextMenu struct{}

// AutoScroll is an out-of-canvas move delta that passed the throttle.
type AutoScroll struct {
	Delta Point
}

// ScrollTick is one firing of the auto-scroll timer.
type ScrollTick struct {
	Gen uint64
}

// TickSettled follows a scroll tick once the new offset has been applied.
type TickSettled struct{}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (ContextMenu) isEvent() {}
func (AutoScroll) isEvent()  {}
func (ScrollTick) isEvent()  {}
func (TickSettled) isEvent() {}

// Effect is a side effect requested by Step.
type Effect interface{ isEffect() }

type (
	AddIntercept    struct{ Kind InterceptKind }
	RemoveIntercept struct{ Kind InterceptKind }
	ClearStyle      struct{}
	SetHighlight    struct{ State HighlightState }
	PrepareMask     struct{}
	ShowMask        struct{ Rect Rect }
	HideMask        struct{}
	// CancelAutoScroll stops the live auto-scroll timer, if any.
	CancelAutoScroll struct{}
	// ArmAutoScroll starts the repeating auto-scroll timer.
	ArmAutoScroll struct{}
	// CancelThrottle drops a trailing delta still waiting in the throttle.
	CancelThrottle struct{}
	// RequestAutoScroll submits an out-of-canvas delta to the throttle.
	RequestAutoScroll struct{ Delta Point }
	SetScrollOffset   struct {
		Offset  ScrollOffset
		Animate bool
	}
	Emit struct {
		Name  EventName
		Cells []CellMeta
	}
	ShowTooltip struct{ Cells []CellMeta }
	// Commit records the final selection of a valid drag.
	Commit struct {
		Range     BrushRange
		Selection []SelectedCell
	}
	// Follow feeds Event back into Step after the preceding effects ran.
	Follow struct{ Event Event }
)

func (AddIntercept) isEffect()      {}
func (RemoveIntercept) isEffect()   {}
func (ClearStyle) isEffect()        {}
func (SetHighlight) isEffect()      {}
func (PrepareMask) isEffect()       {}
func (ShowMask) isEffect()          {}
func (HideMask) isEffect()          {}
func (CancelAutoScroll) isEffect()  {}
func (ArmAutoScroll) isEffect()     {}
func (CancelThrottle) isEffect()    {}
func (RequestAutoScroll) isEffect() {}
func (SetScrollOffset) isEffect()   {}
func (Emit) isEffect()              {}
func (ShowTooltip) isEffect()       {}
func (Commit) isEffect()            {}
func (Follow) isEffect()            {}

// Step applies ev to s.
func Step(s Session, ev Event, v View, cfg Config) (Session, []Effect) {
	switch e := ev.(type) {
	case PointerDown:
		return stepDown(s, e, v)
	case PointerMove:
		return stepMove(s, e, v)
	case AutoScroll:
		return stepAutoScroll(s, e, v, cfg)
	case ScrollTick:
		return stepTick(s, v, cfg)
	case TickSettled:
		return stepSettled(s, v)
	case PointerUp:
		return stepUp(s, v, cfg)
	case ContextMenu:
		return Session{}, []Effect{
			CancelAutoScroll{},
			CancelThrottle{},
			RemoveIntercept{Kind: InterceptHover},
			HideMask{},
		}
	}
	return s, nil
}

func stepDown(s Session, e PointerDown, v View) (Session, []Effect) {
	if e.Button != ButtonPrimary || v.HasIntercept(InterceptClick) {
		return s, nil
	}
	meta, ok := v.HitTest(e.Point)
	if !ok {
		return s, nil
	}
	scroll := v.ScrollOffset()
	start := BrushPoint{
		X:        e.Point.X,
		Y:        e.Point.Y,
		RowIndex: meta.RowIndex,
		ColIndex: meta.ColIndex,
		ScrollX:  scroll.ScrollX,
		ScrollY:  scroll.ScrollY,
	}
	next := Session{
		Stage:     StageClick,
		Start:     start,
		End:       start,
		Displayed: v.DisplayedCells(),
	}
	return next, []Effect{CancelAutoScroll{}, CancelThrottle{}, PrepareMask{}}
}

func stepMove(s Session, e PointerMove, v View) (Session, []Effect) {
	if s.Stage == StageUnDragged {
		return s, nil
	}
	s.Stage = StageDragged
	effects := []Effect{CancelAutoScroll{}}

	if !inCanvas(e.Point, v.ViewportBounds()) {
		delta := Point{X: e.Point.X - s.End.X, Y: e.Point.Y - s.End.Y}
		return s, append(effects, RequestAutoScroll{Delta: delta})
	}

	// Back inside: a trailing out-of-canvas delta must not fire afterwards.
	effects = append(effects, CancelThrottle{})
	meta, ok := v.HitTest(e.Point)
	if !ok {
		return s, effects
	}
	s.End = BrushPoint{
		X:        e.Point.X,
		Y:        e.Point.Y,
		RowIndex: meta.RowIndex,
		ColIndex: meta.ColIndex,
	}
	return s, append(effects, refreshHighlight(&s, v)...)
}

func stepAutoScroll(s Session, e AutoScroll, v View, cfg Config) (Session, []Effect) {
	if s.Stage == StageUnDragged {
		return s, nil
	}
	proj := projectToEdge(s.End, e.Delta, v.ViewportBounds(), v.PanelBounds(), v.ScrollbarThickness(), cfg.EdgeMargin)
	meta, ok := v.HitTest(proj.Point)
	if !ok {
		return s, nil
	}

	if proj.ScrollY {
		s.Delta.Y = AxisDelta{Value: e.Delta.Y, Scroll: true}
	}
	if proj.ScrollX {
		s.Delta.X = AxisDelta{Value: e.Delta.X, Scroll: true}
	}
	s.End = BrushPoint{
		X:        proj.Point.X,
		Y:        proj.Point.Y,
		RowIndex: meta.RowIndex,
		ColIndex: meta.ColIndex,
	}

	effects := refreshHighlight(&s, v)
	if proj.ScrollX || proj.ScrollY {
		effects = append(effects,
			CancelAutoScroll{},
			Follow{Event: ScrollTick{}},
			ArmAutoScroll{},
		)
	}
	return s, effects
}

func stepTick(s Session, v View, cfg Config) (Session, []Effect) {
	if s.Stage == StageUnDragged {
		return s, nil
	}
	offset := bumpScroll(v.ScrollOffset(), s.Delta, cfg.StepX, cfg.StepY)
	return s, []Effect{
		SetScrollOffset{Offset: offset, Animate: true},
		Follow{Event: TickSettled{}},
	}
}

func stepSettled(s Session, v View) (Session, []Effect) {
	if s.Stage == StageUnDragged {
		return s, nil
	}
	meta, ok := v.HitTest(Point{X: s.End.X, Y: s.End.Y})
	if !ok {
		return s, nil
	}
	s.End.RowIndex = meta.RowIndex
	s.End.ColIndex = meta.ColIndex
	return s, refreshHighlight(&s, v)
}

func stepUp(s Session, v View, cfg Config) (Session, []Effect) {
	effects := []Effect{CancelAutoScroll{}, CancelThrottle{}}
	if s.Stage == StageDragged {
		r := Range(s.Start, s.End, v.ScrollOffset())
		if isValid(r, cfg.MinMoveDistance) {
			effects = append(effects, commit(s, r, v)...)
		}
	}
	return Session{}, append(effects, HideMask{})
}

// isValid rejects drags that never left a few pixels around the start.
func isValid(r BrushRange, minDistance float64) bool {
	return r.Width > minDistance || r.Height > minDistance
}

func commit(s Session, r BrushRange, v View) []Effect {
	selection := Materialize(r, v.ColumnLeafNodes())
	rendered := s.Highlighted
	if rendered == nil {
		rendered = []CellMeta{}
	}
	effects := []Effect{
		AddIntercept{Kind: InterceptBrushSelection},
		SetHighlight{State: HighlightState{Name: StateSelected, CellIDs: SelectedIDs(selection)}},
		Commit{Range: r, Selection: selection},
		Emit{Name: EventDataCellBrushSelection, Cells: rendered},
		Emit{Name: EventGlobalSelected, Cells: rendered},
	}
	if len(rendered) == 0 {
		effects = append(effects, RemoveIntercept{Kind: InterceptHover})
	}
	return append(effects, ShowTooltip{Cells: rendered})
}

// refreshHighlight re-reads the rendered cells, projects the current range
// onto them and returns the hover/style/mask/highlight effects. The highlight
// is forced so that an empty result still clears residual hover styling.
func refreshHighlight(s *Session, v View) []Effect {
	r := Range(s.Start, s.End, v.ScrollOffset())
	s.Displayed = v.DisplayedCells()
	s.Highlighted = Project(s.Displayed, r)
	return []Effect{
		AddIntercept{Kind: InterceptHover},
		ClearStyle{},
		ShowMask{Rect: r.Rect()},
		SetHighlight{State: HighlightState{
			Name:    StatePrepareSelect,
			CellIDs: CellIDs(s.Highlighted),
			Force:   true,
		}},
	}
}
