package application

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/streams-cli/internal/domain"
	"github.com/bnema/streams-cli/internal/ports"
)

const DefaultObserveInterval = time.Second

// Observer re-samples the clock at a fixed interval while its stream is
// active and freezes the last observation otherwise.
//
// Every start owns exactly one ticker. Leaving the sampling state stops
// that ticker once and waits for the sampling goroutine to exit, so emit is
// never called after SetStatus or Close returns. emit must not call
// SetStatus or Close on the same observer.
type Observer struct {
	clock    ports.Clock
	interval time.Duration
	emit     func(time.Time)

	mu     sync.Mutex
	cycle  *sampleCycle
	closed bool

	sampling atomic.Bool
	last     atomic.Pointer[time.Time]
}

type sampleCycle struct {
	ticker ports.Ticker
	stop   chan struct{}
	done   chan struct{}
}

func NewObserver(clock ports.Clock, interval time.Duration, emit func(time.Time)) *Observer {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if interval <= 0 {
		interval = DefaultObserveInterval
	}
	if emit == nil {
		emit = func(time.Time) {}
	}

	o := &Observer{
		clock:    clock,
		interval: interval,
		emit:     emit,
	}
	o.record(clock.Now())

	return o
}

func (o *Observer) SetStatus(status domain.StreamStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return
	}

	if status.IsActive() {
		o.startLocked()
		return
	}

	o.stopLocked()
}

// Close stops sampling for good. Later SetStatus calls are ignored.
func (o *Observer) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stopLocked()
	o.closed = true
}

func (o *Observer) Sampling() bool {
	return o.sampling.Load()
}

func (o *Observer) Last() time.Time {
	return *o.last.Load()
}

func (o *Observer) startLocked() {
	if o.cycle != nil {
		return
	}

	o.record(o.clock.Now())

	cycle := &sampleCycle{
		ticker: o.clock.NewTicker(o.interval),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	o.cycle = cycle
	o.sampling.Store(true)

	go o.sample(cycle)
}

func (o *Observer) stopLocked() {
	cycle := o.cycle
	if cycle == nil {
		return
	}

	o.cycle = nil
	o.sampling.Store(false)
	cycle.ticker.Stop()
	close(cycle.stop)
	<-cycle.done
}

func (o *Observer) sample(cycle *sampleCycle) {
	defer close(cycle.done)

	for {
		select {
		case <-cycle.stop:
			return
		case <-cycle.ticker.C():
			select {
			case <-cycle.stop:
				return
			default:
			}

			now := o.clock.Now()
			o.record(now)
			o.emit(now)
		}
	}
}

func (o *Observer) record(now time.Time) {
	o.last.Store(&now)
}
