package json

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bnema/streams-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMixedTimeAndAmountEncodings(t *testing.T) {
	t.Parallel()

	streams, err := Decode(strings.NewReader(`[
		{
			"id": "s-1",
			"sender": "GSENDER",
			"recipient": "GRECIPIENT",
			"totalAmount": "1000.5",
			"withdrawnAmount": 250,
			"startTime": 1771066800000,
			"endTime": "2026-03-16T11:00:00Z",
			"status": "active",
			"tokenSymbol": "USDC"
		},
		{
			"id": "s-2",
			"totalAmount": 10,
			"startTime": "1771066800000",
			"endTime": 1771070400000,
			"status": "Paused"
		}
	]`))
	require.NoError(t, err)
	require.Len(t, streams, 2)

	first := streams[0]
	assert.Equal(t, domain.StreamID("s-1"), first.ID)
	assert.Equal(t, domain.StatusActive, first.Status)
	assert.Equal(t, "1000.5", first.TotalAmount.String())
	assert.Equal(t, "250", first.WithdrawnAmount.String())
	assert.True(t, first.StartTime.Equal(time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)))
	assert.True(t, first.EndTime.Equal(time.Date(2026, 3, 16, 11, 0, 0, 0, time.UTC)))
	assert.Equal(t, "USDC", first.TokenSymbol)

	second := streams[1]
	assert.Equal(t, domain.StatusPaused, second.Status)
	assert.True(t, second.WithdrawnAmount.IsZero())
	assert.Equal(t, time.Hour, second.EndTime.Sub(second.StartTime))
}

func TestDecodeReportsEveryInvalidRecord(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`[
		{"totalAmount": "1", "startTime": 0, "endTime": 1, "status": "Active"},
		{"id": "s-2", "totalAmount": "1e3", "startTime": 0, "endTime": 1, "status": "Active"},
		{"id": "s-3", "totalAmount": "1", "startTime": 0, "endTime": 1, "status": "Streaming"},
		{"id": "s-4", "totalAmount": "1", "startTime": "yesterday", "endTime": 1, "status": "Active"}
	]`))
	require.Error(t, err)

	assert.ErrorContains(t, err, "record 0: ID is required")
	assert.ErrorContains(t, err, "record 1: TotalAmount must be numeric")
	assert.ErrorContains(t, err, "record 2:")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.ErrorContains(t, err, "record 3: StartTime must be epoch milliseconds or RFC3339")
}

func TestDecodeRejectsAmountsTheStoreWouldRefuse(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`[
		{"id": "s-1", "totalAmount": "1000", "startTime": 0, "endTime": 1, "status": "Active"},
		{"id": "s-2", "totalAmount": "1000", "withdrawnAmount": "1001", "startTime": 0, "endTime": 1, "status": "Active"},
		{"id": "s-3", "totalAmount": "-5", "startTime": 0, "endTime": 1, "status": "Active"}
	]`))
	require.Error(t, err)

	assert.ErrorIs(t, err, domain.ErrWithdrawnExceedsTotal)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
	assert.ErrorContains(t, err, "record 1: withdrawn amount exceeds stream total")
	assert.ErrorContains(t, err, "record 2: amount must not be negative")
	assert.NotContains(t, err.Error(), "record 0")
}

func TestDecodeMissingTimesAreRequired(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`[{"id": "s-1", "totalAmount": "1", "status": "Active"}]`))
	require.Error(t, err)
	assert.ErrorContains(t, err, "StartTime is required")
	assert.ErrorContains(t, err, "EndTime is required")
}

func TestDecodeMalformedJSONReturnsError(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`{"id": "s-1"`))
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode feed")
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "feed.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "s-1", "totalAmount": "5", "startTime": 0, "endTime": 1000, "status": "Canceled"}]`), 0o600))

	streams, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, streams, 1)
	assert.Equal(t, domain.StatusCanceled, streams[0].Status)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "open feed file")
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{name: "epoch millis", raw: "1771066800000", want: time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)},
		{name: "rfc3339 with offset", raw: "2026-02-14T12:00:00+01:00", want: time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)},
		{name: "garbage", raw: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}
