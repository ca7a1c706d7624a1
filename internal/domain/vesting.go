package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// VestingSplit partitions a stream into withdrawn, vested-but-not-withdrawn
// and remaining segments. The three percentages always add up to 100 for a
// positive total; RemainingPercent absorbs the rounding residue.
type VestingSplit struct {
	WithdrawnPercent float64
	VestedPercent    float64
	RemainingPercent float64

	Total                  decimal.Decimal
	WithdrawnSize          decimal.Decimal
	VestedSize             decimal.Decimal
	VestedNotWithdrawnSize decimal.Decimal
	RemainingSize          decimal.Decimal
}

// TotalVestedPercent is the unlocked share including what was withdrawn.
func (v VestingSplit) TotalVestedPercent() float64 {
	return v.WithdrawnPercent + v.VestedPercent
}

// ComputeVesting evaluates linear vesting of the snapshot at now.
//
// The withdrawn amount is authoritative: the vested size never drops below
// it even when now has not caught up with an out-of-band withdrawal. A
// non-positive total yields zero percentages instead of NaN. Withdrawn
// amounts outside [0, total] are not corrected here.
func ComputeVesting(s StreamSnapshot, now time.Time) VestingSplit {
	total := s.TotalAmount
	withdrawn := s.WithdrawnAmount
	vested := decimal.Max(linearVested(s, now), withdrawn)

	split := VestingSplit{
		Total:                  total,
		WithdrawnSize:          withdrawn,
		VestedSize:             vested,
		VestedNotWithdrawnSize: vested.Sub(withdrawn),
		RemainingSize:          total.Sub(vested),
	}

	if !total.IsPositive() {
		return split
	}

	split.WithdrawnPercent = withdrawn.Div(total).Mul(hundred).InexactFloat64()
	split.VestedPercent = split.VestedNotWithdrawnSize.Div(total).Mul(hundred).InexactFloat64()
	split.RemainingPercent = 100 - split.WithdrawnPercent - split.VestedPercent

	return split
}

func linearVested(s StreamSnapshot, now time.Time) decimal.Decimal {
	if !now.After(s.StartTime) {
		return decimal.Zero
	}

	duration := s.EndTime.Sub(s.StartTime)
	if duration <= 0 {
		return s.TotalAmount
	}

	elapsed := now.Sub(s.StartTime)
	if elapsed > duration {
		elapsed = duration
	}

	return s.TotalAmount.
		Mul(decimal.NewFromInt(int64(elapsed))).
		Div(decimal.NewFromInt(int64(duration)))
}
