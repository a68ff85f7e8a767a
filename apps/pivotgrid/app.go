// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/app.go
// Summary: Terminal pivot grid app hosting the brush selection engine.
//
// The grid starts one column and one row in from the screen origin and stops
// one column short of the right edge. The gutter column, the title row, the
// spare column and the status line all sit outside the canvas, so dragging
// onto them starts auto-scroll in that direction.

package pivotgrid

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/apps/pivotgrid/brush"
	"github.com/framegrace/texelgrid/apps/pivotgrid/sheet"
	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/internal/devshell"
)

// Screen position of the canvas origin. Column gridLeft-1 and row gridTop-1
// map to negative canvas coordinates.
const (
	gridLeft = 1
	gridTop  = 1
)

// Options configures a terminal App.
type Options struct {
	Title string
	// Config is the app config; nil uses built-in defaults.
	Config config.Config
	// System provides the colour table.
	System config.Config
	// Clock drives the engine timers; nil uses the wall clock.
	Clock brush.Clock
}

// App is a devshell app showing one pivot table.
type App struct {
	mu sync.Mutex

	title   string
	sheet   *sheet.Sheet
	engine  *brush.Engine
	mouse   *MouseCoordinator
	palette Palette
	verbose bool

	cols, rows int
	selected   int

	post     func(interface{})
	refresh  chan<- bool
	stop     chan struct{}
	stopOnce sync.Once
}

var (
	_ devshell.App              = (*App)(nil)
	_ devshell.MouseHandler     = (*App)(nil)
	_ devshell.InterruptHandler = (*App)(nil)
)

// New creates the app for p.
func New(p *sheet.Pivot, opts Options) *App {
	layout := LayoutConfig(opts.Config, SectionLayout, sheet.TerminalLayout())
	a := &App{
		title:   opts.Title,
		sheet:   sheet.New(p, layout),
		palette: NewPalette(opts.System),
		verbose: opts.Config.GetBool(AppName, "verbose", false),
		stop:    make(chan struct{}),
	}
	if a.title == "" {
		a.title = "Pivot"
	}

	engineOpts := []brush.Option{brush.WithPoster(a.postEvent)}
	if opts.Clock != nil {
		engineOpts = append(engineOpts, brush.WithClock(opts.Clock))
	}
	a.engine = brush.NewEngine(a.sheet, BrushConfig(opts.Config, SectionBrush, TerminalBrush()), engineOpts...)

	l := a.sheet.Layout()
	a.mouse = NewMouseCoordinator(a.engine, a.sheet, l.ColWidth, l.RowHeight)
	a.mouse.SetOrigin(gridLeft, gridTop)

	a.sheet.On(brush.EventGlobalSelected, func(cells []brush.CellMeta) {
		a.selected = len(a.engine.Selection())
		if a.verbose {
			log.Printf("PivotGrid: selection committed, %d cells (%d rendered)", a.selected, len(cells))
		}
	})
	return a
}

// Sheet exposes the hosted sheet.
func (a *App) Sheet() *sheet.Sheet { return a.sheet }

// Engine exposes the brush engine.
func (a *App) Engine() *brush.Engine { return a.engine }

// postEvent is the engine poster. Timer callbacks run on their own goroutine,
// so events go through the runner's event loop when one is attached.
func (a *App) postEvent(ev brush.Event) {
	a.mu.Lock()
	post := a.post
	a.mu.Unlock()
	if post != nil {
		post(ev)
		return
	}
	a.mu.Lock()
	a.engine.Handle(ev)
	a.mu.Unlock()
	a.requestRefresh()
}

func (a *App) SetInterruptPoster(post func(interface{})) {
	a.mu.Lock()
	a.post = post
	a.mu.Unlock()
}

// HandleInterrupt runs engine events posted by timer callbacks.
func (a *App) HandleInterrupt(data interface{}) {
	ev, ok := data.(brush.Event)
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.engine.Handle(ev)
}

func (a *App) SetRefreshNotifier(ch chan<- bool) {
	a.mu.Lock()
	a.refresh = ch
	a.mu.Unlock()
}

func (a *App) requestRefresh() {
	a.mu.Lock()
	ch := a.refresh
	a.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- true:
	default:
	}
}

// Run blocks until Stop.
func (a *App) Run() error {
	<-a.stop
	return nil
}

// Stop abandons any gesture and releases Run.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		a.mu.Lock()
		a.engine.Reset()
		a.mu.Unlock()
		close(a.stop)
	})
}

func (a *App) GetTitle() string { return a.title }

// Resize fits the canvas to the screen minus the gutter, the title row, the
// spare column and the status line.
func (a *App) Resize(cols, rows int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cols, a.rows = cols, rows
	a.sheet.Resize(float64(max(cols-gridLeft-1, 0)), float64(max(rows-gridTop-1, 0)))
}

func (a *App) HandleMouse(ev *tcell.EventMouse) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mouse.HandleMouse(ev)
}

// HandleKey scrolls with the arrow and page keys. Escape abandons the drag
// and clears the selection.
func (a *App) HandleKey(ev *tcell.EventKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	l := a.sheet.Layout()
	page := l.Height - l.ColHeaderHeight - l.RowHeight
	if page < l.RowHeight {
		page = l.RowHeight
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		a.engine.Reset()
		a.sheet.ClearSelection()
		a.selected = 0
	case tcell.KeyUp:
		a.sheet.ScrollBy(0, -l.RowHeight)
	case tcell.KeyDown:
		a.sheet.ScrollBy(0, l.RowHeight)
	case tcell.KeyLeft:
		a.sheet.ScrollBy(-l.ColWidth, 0)
	case tcell.KeyRight:
		a.sheet.ScrollBy(l.ColWidth, 0)
	case tcell.KeyPgUp:
		a.sheet.ScrollBy(0, -page)
	case tcell.KeyPgDn:
		a.sheet.ScrollBy(0, page)
	case tcell.KeyHome:
		a.sheet.SetScrollOffset(brush.ScrollOffset{}, false)
	case tcell.KeyEnd:
		a.sheet.SetScrollOffset(a.sheet.MaxScroll(), false)
	}
}

func (a *App) Render() [][]devshell.Cell {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cols <= 0 || a.rows <= 0 {
		return [][]devshell.Cell{}
	}
	return renderFrame(a.sheet.Frame(), a.palette, a.cols, a.rows, a.title, a.statusLocked())
}

// Status returns the text of the status line.
func (a *App) Status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.statusLocked()
}

func (a *App) statusLocked() string {
	if a.engine.Stage() == brush.StageDragged {
		r := a.engine.Range()
		s := fmt.Sprintf("brushing rows %d-%d, columns %d-%d", r.Start.RowIndex+1, r.End.RowIndex+1, r.Start.ColIndex+1, r.End.ColIndex+1)
		if a.engine.AutoScrollActive() {
			s += " (scrolling)"
		}
		return s
	}
	if t, ok := a.sheet.Tooltip(); ok {
		return fmt.Sprintf("%s | %d cells in range", t, a.selected)
	}
	if cell, ok := a.sheet.Hover(); ok {
		p := a.sheet.Pivot()
		value := "empty"
		if v, ok := p.Value(cell.RowIndex, cell.ColIndex); ok {
			value = sheet.FormatValue(v)
		}
		return fmt.Sprintf("%s | %s: %s",
			strings.Join(p.Rows[cell.RowIndex].Labels, " / "),
			strings.Join(p.Cols[cell.ColIndex].Labels, " / "), value)
	}
	return fmt.Sprintf("%s: %d rows x %d columns | drag to select, Esc clears, Ctrl-C quits",
		a.title, a.sheet.Pivot().RowCount(), a.sheet.Pivot().ColCount())
}
