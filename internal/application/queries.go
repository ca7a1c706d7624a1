package application

import (
	"time"

	"github.com/bnema/streams-cli/internal/domain"
)

type StreamView struct {
	Stream        domain.Stream
	DisplayStatus domain.StreamStatus
	Split         domain.VestingSplit
	Countdown     domain.Countdown
	Actions       []domain.StreamAction
	ObservedAt    time.Time
}

// ViewAt projects a stream into display values for one observation time.
func ViewAt(stream domain.Stream, now time.Time) StreamView {
	return StreamView{
		Stream:        stream,
		DisplayStatus: stream.DisplayStatus(now),
		Split:         stream.Vesting(now),
		Countdown:     stream.Countdown(now),
		Actions:       domain.Actions(stream),
		ObservedAt:    now,
	}
}
