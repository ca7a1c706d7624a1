package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type StreamID string

type Stream struct {
	ID              StreamID
	Sender          string
	Recipient       string
	TokenSymbol     string
	TotalAmount     decimal.Decimal
	WithdrawnAmount decimal.Decimal
	StartTime       time.Time
	EndTime         time.Time
	Status          StreamStatus
}

// StreamSnapshot is the part of a stream the vesting math reads. It is
// immutable for the duration of one observation.
type StreamSnapshot struct {
	StartTime       time.Time
	EndTime         time.Time
	TotalAmount     decimal.Decimal
	WithdrawnAmount decimal.Decimal
	Status          StreamStatus
}

func (s Stream) Snapshot() StreamSnapshot {
	return StreamSnapshot{
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		TotalAmount:     s.TotalAmount,
		WithdrawnAmount: s.WithdrawnAmount,
		Status:          s.Status,
	}
}

// DisplayStatus reports Completed once the end time has passed, whatever
// the stored status says.
func (s Stream) DisplayStatus(now time.Time) StreamStatus {
	if now.After(s.EndTime) {
		return StatusCompleted
	}

	return s.Status
}

// Countdown treats a stream whose end does not come after its start as
// already completed.
func (s Stream) Countdown(now time.Time) Countdown {
	if !s.EndTime.After(s.StartTime) {
		return Countdown{Completed: true}
	}

	return CountdownAt(s.EndTime, now)
}

func (s Stream) Vesting(now time.Time) VestingSplit {
	return ComputeVesting(s.Snapshot(), now)
}

// Validate checks the shape of a record before it is stored. The vesting
// math itself never rejects input.
func (s Stream) Validate() error {
	if strings.TrimSpace(string(s.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if _, err := ParseStatus(string(s.Status)); err != nil {
		return err
	}
	if s.TotalAmount.IsNegative() || s.WithdrawnAmount.IsNegative() {
		return ErrNegativeAmount
	}
	if s.WithdrawnAmount.GreaterThan(s.TotalAmount) {
		return fmt.Errorf("%w: %s > %s", ErrWithdrawnExceedsTotal, s.WithdrawnAmount, s.TotalAmount)
	}

	return nil
}
