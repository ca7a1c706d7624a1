package application

import (
	"io"
	"sync"
	"time"

	"github.com/bnema/streams-cli/internal/domain"
	"github.com/bnema/streams-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

// ObserverRegistry keeps one Observer per stream id.
type ObserverRegistry struct {
	clock    ports.Clock
	interval time.Duration
	emit     func(domain.StreamID, time.Time)
	log      logrus.FieldLogger

	mu        sync.Mutex
	observers map[domain.StreamID]*Observer
}

func NewObserverRegistry(clock ports.Clock, interval time.Duration, emit func(domain.StreamID, time.Time), log logrus.FieldLogger) *ObserverRegistry {
	if emit == nil {
		emit = func(domain.StreamID, time.Time) {}
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	return &ObserverRegistry{
		clock:     clock,
		interval:  interval,
		emit:      emit,
		log:       log,
		observers: map[domain.StreamID]*Observer{},
	}
}

// Sync forwards every stream's status to its observer, creating observers
// for new ids and closing the ones whose stream disappeared.
func (r *ObserverRegistry) Sync(streams []domain.Stream) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[domain.StreamID]struct{}, len(streams))
	for _, stream := range streams {
		seen[stream.ID] = struct{}{}

		observer, ok := r.observers[stream.ID]
		if !ok {
			id := stream.ID
			observer = NewObserver(r.clock, r.interval, func(now time.Time) {
				r.emit(id, now)
			})
			r.observers[id] = observer
		}

		wasSampling := observer.Sampling()
		observer.SetStatus(stream.Status)
		if observer.Sampling() != wasSampling {
			r.log.WithFields(logrus.Fields{
				"stream":   stream.ID,
				"status":   stream.Status,
				"sampling": observer.Sampling(),
			}).Debug("observer state changed")
		}
	}

	for id, observer := range r.observers {
		if _, ok := seen[id]; ok {
			continue
		}

		observer.Close()
		delete(r.observers, id)
		r.log.WithField("stream", id).Debug("observer removed")
	}
}

func (r *ObserverRegistry) Observation(id domain.StreamID) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	observer, ok := r.observers[id]
	if !ok {
		return time.Time{}, false
	}

	return observer.Last(), true
}

func (r *ObserverRegistry) Sampling(id domain.StreamID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	observer, ok := r.observers[id]
	return ok && observer.Sampling()
}

func (r *ObserverRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.observers)
}

func (r *ObserverRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, observer := range r.observers {
		observer.Close()
		delete(r.observers, id)
	}
}
