package circulation

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultFineRatePerDay is used when no rate is configured.
var DefaultFineRatePerDay = decimal.RequireFromString("0.50")

// FineCalculator computes the fine of a returned loan.
type FineCalculator struct {
	ratePerDay decimal.Decimal
}

// NewFineCalculator creates a FineCalculator charging ratePerDay for each day past the due date.
func NewFineCalculator(ratePerDay decimal.Decimal) (FineCalculator, error) {
	if ratePerDay.IsNegative() {
		return FineCalculator{}, ErrNegativeFineRate
	}

	return FineCalculator{ratePerDay: ratePerDay}, nil
}

// DefaultFineCalculator returns a FineCalculator using DefaultFineRatePerDay.
func DefaultFineCalculator() FineCalculator {
	return FineCalculator{ratePerDay: DefaultFineRatePerDay}
}

// RatePerDay returns the configured rate.
func (f FineCalculator) RatePerDay() decimal.Decimal {
	return f.ratePerDay
}

// CalculateFine returns daysOverdue * rate, or zero if the item is not returned yet or not late.
func (f FineCalculator) CalculateFine(dueDate time.Time, returnDate *time.Time) decimal.Decimal {
	if returnDate == nil || dueDate.IsZero() {
		return decimal.Zero
	}

	days := DaysBetween(dueDate, *returnDate)
	if days <= 0 {
		return decimal.Zero
	}

	return f.ratePerDay.Mul(decimal.NewFromInt(int64(days)))
}
