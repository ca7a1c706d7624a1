package application

import (
	"time"

	"github.com/bnema/streams-cli/internal/domain"
	"github.com/shopspring/decimal"
)

type AddStreamCommand struct {
	ID              domain.StreamID
	Sender          string
	Recipient       string
	TokenSymbol     string
	TotalAmount     decimal.Decimal
	WithdrawnAmount decimal.Decimal
	StartTime       time.Time
	EndTime         time.Time
	Status          string
}

// RecordWithdrawalCommand carries the cumulative withdrawn amount reported
// for a stream, not a delta.
type RecordWithdrawalCommand struct {
	ID              domain.StreamID
	WithdrawnAmount decimal.Decimal
}

type SetStatusCommand struct {
	ID     domain.StreamID
	Status string
}
