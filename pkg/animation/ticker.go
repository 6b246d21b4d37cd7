package animation

import (
	"sync"
	"time"
)

var (
	tickerMu      sync.Mutex
	activeTickers = make(map[*Ticker]struct{})
	tickerOrder   uint64
)

// Ticker calls a callback on each frame while active.
//
// Ticker is the low-level timing primitive used by [Value]. The callback
// receives the elapsed time since Start was called. Tickers are driven by the
// host frame loop via [StepTickers]; a ticker started while StepTickers is
// running first fires on the following frame.
type Ticker struct {
	callback func(elapsed time.Duration)
	isActive bool
	start    time.Time
	order    uint64
}

// NewTicker creates a new ticker with the given callback.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{
		callback: callback,
	}
}

// Start activates the ticker.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = Now()
	tickerMu.Lock()
	tickerOrder++
	t.order = tickerOrder
	activeTickers[t] = struct{}{}
	tickerMu.Unlock()
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	tickerMu.Lock()
	delete(activeTickers, t)
	tickerMu.Unlock()
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return Now().Sub(t.start)
}

// StepTickers advances all active tickers in the order they were started.
// This should be called once per frame from the engine.
func StepTickers() {
	tickerMu.Lock()
	if len(activeTickers) == 0 {
		tickerMu.Unlock()
		return
	}
	// Copy so callbacks can start and stop tickers without holding the lock.
	tickers := make([]*Ticker, 0, len(activeTickers))
	for ticker := range activeTickers {
		tickers = append(tickers, ticker)
	}
	tickerMu.Unlock()

	sortTickers(tickers)

	now := Now()
	for _, ticker := range tickers {
		if ticker.isActive && ticker.callback != nil {
			ticker.callback(now.Sub(ticker.start))
		}
	}
}

// sortTickers orders by start sequence so completion callbacks fire
// deterministically. Frame counts are small, insertion sort is enough.
func sortTickers(tickers []*Ticker) {
	for i := 1; i < len(tickers); i++ {
		for j := i; j > 0 && tickers[j].order < tickers[j-1].order; j-- {
			tickers[j], tickers[j-1] = tickers[j-1], tickers[j]
		}
	}
}

// HasActiveTickers returns true if any tickers are active.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(activeTickers) > 0
}

// Defer runs fn on the next frame. It is how completions that are known
// up front (empty animation groups, halted drivers) stay asynchronous.
func Defer(fn func()) {
	if fn == nil {
		return
	}
	var t *Ticker
	t = NewTicker(func(time.Duration) {
		t.Stop()
		fn()
	})
	t.Start()
}
