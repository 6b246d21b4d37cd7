// Package engine runs the frame loop that the transitioner and gesture
// interpreter live on.
//
// All navigation state is confined to the goroutine that calls
// [Loop.StepFrame]. Work that finishes elsewhere (awaited transition hooks)
// is handed back with [Loop.Dispatch] or [Loop.Await] and runs at the start
// of the next frame, before tickers advance.
package engine

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/go-drift/cardstack/pkg/animation"
	"github.com/go-drift/cardstack/pkg/errors"
)

// Loop owns a dispatch queue and steps animation tickers once per frame.
type Loop struct {
	dispatchMu    sync.Mutex
	dispatchQueue []func()

	// frameLock serialises StepFrame; NeedsFrame uses TryLock so the
	// platform thread never stalls behind a running frame.
	frameLock sync.Mutex

	pendingFrameRequest atomic.Bool
	pendingAwaits       atomic.Int64
	frames              atomic.Uint64

	scheduleFrame func()
}

// NewLoop creates an idle loop.
func NewLoop() *Loop {
	return &Loop{}
}

var defaultLoop = NewLoop()

// Default returns the process-wide loop used when no loop is injected.
func Default() *Loop {
	return defaultLoop
}

// Dispatch schedules a callback on the default loop.
func Dispatch(callback func()) {
	defaultLoop.Dispatch(callback)
}

// StepFrame runs one frame of the default loop.
func StepFrame() {
	defaultLoop.StepFrame()
}

// NeedsFrame reports whether the default loop has pending work.
func NeedsFrame() bool {
	return defaultLoop.NeedsFrame()
}

// SetScheduleFrame registers a callback the loop invokes whenever new work
// arrives, enabling on-demand frame scheduling instead of polling.
func (l *Loop) SetScheduleFrame(fn func()) {
	l.dispatchMu.Lock()
	l.scheduleFrame = fn
	l.dispatchMu.Unlock()
}

// Dispatch schedules a callback to run during the next frame. Safe to call
// from any goroutine.
func (l *Loop) Dispatch(callback func()) {
	if callback == nil {
		return
	}
	l.dispatchMu.Lock()
	l.dispatchQueue = append(l.dispatchQueue, callback)
	notify := l.scheduleFrame
	l.dispatchMu.Unlock()
	l.pendingFrameRequest.Store(true)
	if notify != nil {
		notify()
	}
}

// Await waits for pending on a separate goroutine and delivers its result
// to callback on the loop. A nil channel resolves on the next frame with a
// nil error. A closed channel resolves with nil.
func (l *Loop) Await(pending <-chan error, callback func(error)) {
	if callback == nil {
		return
	}
	if pending == nil {
		l.Dispatch(func() { callback(nil) })
		return
	}
	l.pendingAwaits.Inc()
	go func() {
		err := <-pending
		l.Dispatch(func() {
			l.pendingAwaits.Dec()
			callback(err)
		})
	}()
}

// RequestFrame marks the loop as needing a frame.
func (l *Loop) RequestFrame() {
	l.pendingFrameRequest.Store(true)
	l.dispatchMu.Lock()
	notify := l.scheduleFrame
	l.dispatchMu.Unlock()
	if notify != nil {
		notify()
	}
}

// StepFrame drains the dispatch queue and then advances animation tickers.
// Callbacks dispatched while the frame runs are deferred to the next frame.
func (l *Loop) StepFrame() {
	l.frameLock.Lock()
	defer l.frameLock.Unlock()

	l.pendingFrameRequest.Store(false)
	for _, cb := range l.drainDispatchQueue() {
		runDispatched(cb)
	}
	animation.StepTickers()
	l.frames.Inc()
}

func runDispatched(cb func()) {
	defer errors.Recover("engine.Dispatch")
	cb()
}

func (l *Loop) drainDispatchQueue() []func() {
	l.dispatchMu.Lock()
	callbacks := l.dispatchQueue
	l.dispatchQueue = nil
	l.dispatchMu.Unlock()
	return callbacks
}

// NeedsFrame returns true if dispatched callbacks, awaited results,
// frame requests, or running animations are outstanding.
func (l *Loop) NeedsFrame() bool {
	if !l.frameLock.TryLock() {
		return true
	}
	defer l.frameLock.Unlock()

	l.dispatchMu.Lock()
	hasCallbacks := len(l.dispatchQueue) > 0
	l.dispatchMu.Unlock()
	if hasCallbacks {
		return true
	}
	if l.pendingFrameRequest.Load() {
		return true
	}
	if l.pendingAwaits.Load() > 0 {
		return true
	}
	return animation.HasActiveTickers()
}

// PendingAwaits returns the number of awaited channels not yet delivered.
func (l *Loop) PendingAwaits() int64 {
	return l.pendingAwaits.Load()
}

// Frames returns how many frames have been stepped.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}
