// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pivotgrid/brush/loop.go
// Summary: Channel-based event loop that serializes engine handlers.

package brush

import (
	"context"
	"sync"
)

// Loop runs Engine.Handle on a single goroutine, which also owns the sheet.
// Pointer events and timer ticks are posted to it and processed in arrival
// order.
type Loop struct {
	engine *Engine
	events chan Event
	done   chan struct{}
	once   sync.Once
}

// callEvent runs a function on the loop goroutine.
type callEvent struct {
	fn    func(*Engine)
	reply chan struct{}
}

func (callEvent) isEvent() {}

// NewLoop wraps engine and redirects its timer callbacks to the loop.
func NewLoop(engine *Engine, buffer int) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	l := &Loop{
		engine: engine,
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
	engine.SetPoster(func(ev Event) { l.Post(ev) })
	return l
}

// Post enqueues ev. It returns false once the loop has stopped.
func (l *Loop) Post(ev Event) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- ev:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop goroutine and waits for it to finish. It returns
// false if the loop stopped before fn ran.
func (l *Loop) Do(fn func(*Engine)) bool {
	reply := make(chan struct{})
	if !l.Post(callEvent{fn: fn, reply: reply}) {
		return false
	}
	select {
	case <-reply:
		return true
	case <-l.done:
		return false
	}
}

// Run processes events until ctx is cancelled. Any gesture in progress is
// reset before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			l.engine.Reset()
			return ctx.Err()
		case ev := <-l.events:
			if call, ok := ev.(callEvent); ok {
				call.fn(l.engine)
				close(call.reply)
				continue
			}
			l.engine.Handle(ev)
		}
	}
}
