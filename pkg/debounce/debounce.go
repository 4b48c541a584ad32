// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package debounce delays propagation of a rapidly changing value until it
// has been stable for a fixed interval.
//
// # Usage
//
//	d := debounce.New(500*time.Millisecond, func(term string) {
//	    session.Dispatch(search.QuerySettled{Value: term})
//	})
//	d.Push("m")
//	d.Push("mi")
//	d.Push("mic") // only "mic" is emitted, 500ms after this call
//	defer d.Stop()
//
// # Concurrency
//
// A Debouncer is safe for concurrent use. The emit callback runs on a timer
// goroutine and must not block for long.
package debounce

import (
	"sync"
	"time"
)

// Debouncer emits the latest pushed value once no new value has arrived for the delay.
type Debouncer[T any] struct {
	delay time.Duration
	emit  func(T)

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	stopped    bool
}

// New creates a Debouncer that calls emit after delay of inactivity.
// A zero or negative delay emits synchronously on every Push.
func New[T any](delay time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, emit: emit}
}

// Push records a new value, cancelling any pending emission and rescheduling.
// Push after Stop is ignored.
func (d *Debouncer[T]) Push(value T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}

	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if d.delay <= 0 {
		d.mu.Unlock()
		d.emit(value)
		return
	}

	generation := d.generation
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(generation, value)
	})
	d.mu.Unlock()
}

// fire emits value unless a newer Push or a Stop superseded it.
// time.Timer.Stop cannot recall a callback that has already started, so the
// generation check is what prevents stale emissions.
func (d *Debouncer[T]) fire(generation uint64, value T) {
	d.mu.Lock()
	if d.stopped || generation != d.generation {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.emit(value)
}

// Pending reports whether an emission is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels any pending emission. No emission fires after Stop returns,
// except one whose callback was already executing.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
