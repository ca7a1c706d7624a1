package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdownAtDecomposesMilliseconds(t *testing.T) {
	countdown := CountdownAt(at(90_061_000), at(0))

	assert.False(t, countdown.Completed)
	assert.Equal(t, RemainingDuration{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}, countdown.Remaining)
	assert.Equal(t, TierDays, countdown.Tier())
	assert.Equal(t, "1d 1h 1m remaining", countdown.String())
}

func TestCountdownAtCompletedWhenEndReached(t *testing.T) {
	assert.True(t, CountdownAt(at(1000), at(1500)).Completed)
	assert.True(t, CountdownAt(at(1000), at(1000)).Completed)
	assert.False(t, CountdownAt(at(1000), at(999)).Completed)
	assert.Equal(t, "Completed", CountdownAt(at(1000), at(1000)).String())
}

func TestCountdownAtTruncatesSeconds(t *testing.T) {
	countdown := CountdownAt(at(59_999), at(0))

	assert.Equal(t, RemainingDuration{Seconds: 59}, countdown.Remaining)
}

func TestCountdownRoundTripStaysWithinOneSecond(t *testing.T) {
	for _, diff := range []int64{1, 999, 1_000, 61_001, 3_599_999, 86_400_000, 90_061_000, 987_654_321} {
		countdown := CountdownAt(at(diff), at(0))
		rebuilt := countdown.Remaining.Duration().Milliseconds()

		assert.LessOrEqual(t, rebuilt, diff, "diff %d", diff)
		assert.Greater(t, rebuilt, diff-1000, "diff %d", diff)
		assert.Less(t, countdown.Remaining.Hours, int64(24))
		assert.Less(t, countdown.Remaining.Minutes, int64(60))
		assert.Less(t, countdown.Remaining.Seconds, int64(60))
	}
}

func TestCountdownTiers(t *testing.T) {
	tests := []struct {
		name   string
		diff   time.Duration
		tier   CountdownTier
		urgent bool
		text   string
	}{
		{name: "days", diff: 49*time.Hour + 5*time.Minute, tier: TierDays, text: "2d 1h 5m remaining"},
		{name: "hours", diff: 3*time.Hour + 2*time.Minute + 7*time.Second, tier: TierHours, text: "3h 2m 7s remaining"},
		{name: "minutes", diff: 42*time.Minute + 9*time.Second, tier: TierMinutes, urgent: true, text: "42m 9s remaining"},
		{name: "seconds only", diff: 12 * time.Second, tier: TierMinutes, urgent: true, text: "0m 12s remaining"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			countdown := CountdownAt(epoch.Add(tt.diff), epoch)
			assert.Equal(t, tt.tier, countdown.Tier())
			assert.Equal(t, tt.urgent, countdown.Urgent())
			assert.Equal(t, tt.text, countdown.String())
		})
	}
}

func TestStreamCountdownDegenerateDurationIsCompleted(t *testing.T) {
	stream := Stream{StartTime: at(5000), EndTime: at(5000)}

	assert.True(t, stream.Countdown(at(0)).Completed)
	assert.False(t, stream.Countdown(at(0)).Urgent())
}
