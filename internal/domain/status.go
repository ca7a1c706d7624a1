package domain

import (
	"fmt"
	"strings"
)

type StreamStatus string

const (
	StatusActive      StreamStatus = "Active"
	StatusCanceled    StreamStatus = "Canceled"
	StatusTransferred StreamStatus = "Transferred"
	StatusPaused      StreamStatus = "Paused"
	StatusCompleted   StreamStatus = "Completed"
)

var knownStatuses = []StreamStatus{
	StatusActive,
	StatusCanceled,
	StatusTransferred,
	StatusPaused,
	StatusCompleted,
}

// ParseStatus matches raw against the known statuses ignoring case and
// returns the canonical spelling.
func ParseStatus(raw string) (StreamStatus, error) {
	trimmed := strings.TrimSpace(raw)
	for _, status := range knownStatuses {
		if strings.EqualFold(trimmed, string(status)) {
			return status, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

func (s StreamStatus) IsActive() bool {
	return strings.EqualFold(strings.TrimSpace(string(s)), string(StatusActive))
}

func (s StreamStatus) Label() string {
	if s == "" {
		return "unknown"
	}

	return strings.ToLower(string(s))
}
