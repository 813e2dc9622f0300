package config

import (
	"os"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const envFineRate = "CIRCULATION_FINE_RATE"

// FineRateFromEnv reads the fine per overdue day from CIRCULATION_FINE_RATE.
// An empty, unparseable, or negative value yields circulation.DefaultFineRatePerDay,
// the latter two with a warning.
func FineRateFromEnv(logger circulation.Logger) decimal.Decimal {
	raw := os.Getenv(envFineRate)
	if raw == "" {
		return circulation.DefaultFineRatePerDay
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() {
		if logger != nil {
			logger.Warn("invalid fine rate, using default",
				"env", envFineRate,
				"value", raw,
				"default", circulation.DefaultFineRatePerDay.StringFixed(2))
		}

		return circulation.DefaultFineRatePerDay
	}

	return rate
}
