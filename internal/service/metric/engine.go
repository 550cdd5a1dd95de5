package metric

import (
	"time"

	"github.com/salesverse/salesverse-backend-go/internal/domain/sale"
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

const (
	// salesPerHourPlaces matches NUMERIC(12,4) on daily_logs.
	salesPerHourPlaces = 4
	// commissionPlaces matches NUMERIC(12,2).
	commissionPlaces = 2

	// minLiveHours is the divisor floor early in a shift.
	minLiveHours = 1.0
	// fullShiftMargin: once less than this is left of the shift, the live
	// divisor jumps to the full shift length.
	fullShiftMargin = 1.0
)

// LiveDivisor clamps the hours elapsed since login for the live path.
func LiveDivisor(elapsed time.Duration, shiftHours float64) float64 {
	hours := elapsed.Hours()
	switch {
	case hours < minLiveHours:
		return minLiveHours
	case hours > shiftHours-fullShiftMargin:
		return shiftHours
	default:
		return hours
	}
}

// ComputeLive derives the metrics of a shift that is still running at now.
func ComputeLive(agg sale.Aggregate, state shift.ShiftState, now time.Time) shift.Metrics {
	divisor := LiveDivisor(now.Sub(state.LoginTime), state.ShiftDurationHours)
	return compute(agg, divisor)
}

// ComputeHistorical derives the metrics of a completed shift.
func ComputeHistorical(agg sale.Aggregate, shiftHours float64) shift.Metrics {
	return compute(agg, shiftHours)
}

func compute(agg sale.Aggregate, divisor float64) shift.Metrics {
	return shift.Metrics{
		SalesPerHour: decimal.NewFromInt(agg.ClosedCount).DivRound(decimal.NewFromFloat(divisor), salesPerHourPlaces),
		Commission:   agg.CommissionTotal.Round(commissionPlaces),
	}
}

// Summarize folds sales into the aggregate the store would report for them.
func Summarize(sales []sale.Sale) sale.Aggregate {
	agg := sale.Aggregate{CommissionTotal: decimal.Zero}
	for _, s := range sales {
		if s.Status != sale.StatusClosed {
			continue
		}
		agg.ClosedCount++
		agg.CommissionTotal = agg.CommissionTotal.Add(s.Commission)
	}
	return agg
}
