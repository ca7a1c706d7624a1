package domain

import (
	"fmt"
	"time"
)

type CountdownTier int

const (
	TierMinutes CountdownTier = iota
	TierHours
	TierDays
)

// RemainingDuration is a calendar-free breakdown of a positive duration.
// Only Days is unbounded; the other fields stay below their modulus.
type RemainingDuration struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

func (r RemainingDuration) Duration() time.Duration {
	seconds := ((r.Days*24+r.Hours)*60+r.Minutes)*60 + r.Seconds
	return time.Duration(seconds) * time.Second
}

type Countdown struct {
	Completed bool
	Remaining RemainingDuration
}

// CountdownAt breaks endTime-now into whole days, hours, minutes and
// seconds, truncating. It is Completed when now is not before endTime.
func CountdownAt(endTime, now time.Time) Countdown {
	diff := endTime.Sub(now)
	if diff <= 0 {
		return Countdown{Completed: true}
	}

	ms := diff.Milliseconds()
	return Countdown{
		Remaining: RemainingDuration{
			Days:    ms / 86_400_000,
			Hours:   (ms / 3_600_000) % 24,
			Minutes: (ms / 60_000) % 60,
			Seconds: (ms / 1_000) % 60,
		},
	}
}

// Tier picks the most significant non-zero unit.
func (c Countdown) Tier() CountdownTier {
	switch {
	case c.Remaining.Days > 0:
		return TierDays
	case c.Remaining.Hours > 0:
		return TierHours
	default:
		return TierMinutes
	}
}

// Urgent marks the finest tier, under one hour left.
func (c Countdown) Urgent() bool {
	return !c.Completed && c.Tier() == TierMinutes
}

func (c Countdown) String() string {
	if c.Completed {
		return "Completed"
	}

	r := c.Remaining
	switch c.Tier() {
	case TierDays:
		return fmt.Sprintf("%dd %dh %dm remaining", r.Days, r.Hours, r.Minutes)
	case TierHours:
		return fmt.Sprintf("%dh %dm %ds remaining", r.Hours, r.Minutes, r.Seconds)
	default:
		return fmt.Sprintf("%dm %ds remaining", r.Minutes, r.Seconds)
	}
}
