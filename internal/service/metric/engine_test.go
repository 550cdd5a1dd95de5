package metric

import (
	"testing"
	"time"

	"github.com/salesverse/salesverse-backend-go/internal/domain/sale"
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func TestLiveDivisor_Clamping(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		shift   float64
		want    float64
	}{
		{"early in shift uses one hour floor", hours(0.2), 8, 1},
		{"past shift uses full shift", hours(9), 8, 8},
		{"mid shift is unclamped", hours(5), 8, 5},
		{"exactly one hour", hours(1), 8, 1},
		{"exactly shift minus one is unclamped", hours(7), 8, 7},
		{"just past shift minus one", hours(7.5), 8, 8},
		{"one hour shift always divides by one", hours(0.5), 1, 1},
		{"negative elapsed clamps to floor", -time.Minute, 8, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, LiveDivisor(c.elapsed, c.shift))
		})
	}
}

func TestComputeLive(t *testing.T) {
	login := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	state := shift.ShiftState{LoginTime: login, ShiftDurationHours: 8}
	agg := sale.Aggregate{ClosedCount: 3, CommissionTotal: d("45")}

	m := ComputeLive(agg, state, login.Add(12*time.Minute))
	assert.True(t, m.SalesPerHour.Equal(d("3")), "got %s", m.SalesPerHour)
	assert.True(t, m.Commission.Equal(d("45")))

	m = ComputeLive(agg, state, login.Add(4*time.Hour))
	assert.True(t, m.SalesPerHour.Equal(d("0.75")), "got %s", m.SalesPerHour)

	m = ComputeLive(agg, state, login.Add(9*time.Hour))
	assert.True(t, m.SalesPerHour.Equal(d("0.375")), "got %s", m.SalesPerHour)
}

func TestComputeHistorical_UsesShiftLength(t *testing.T) {
	agg := sale.Aggregate{ClosedCount: 2, CommissionTotal: d("40")}

	m := ComputeHistorical(agg, 8)
	assert.True(t, m.SalesPerHour.Equal(d("0.25")))
	assert.True(t, m.Commission.Equal(d("40")))

	m = ComputeHistorical(sale.Aggregate{ClosedCount: 1, CommissionTotal: decimal.Zero}, 3)
	assert.True(t, m.SalesPerHour.Equal(d("0.3333")), "got %s", m.SalesPerHour)
}

func TestComputeHistorical_EmptyBucket(t *testing.T) {
	m := ComputeHistorical(sale.Aggregate{CommissionTotal: decimal.Zero}, 8)
	assert.True(t, m.SalesPerHour.IsZero())
	assert.True(t, m.Commission.IsZero())
}

func TestSummarize_ExcludesOpenSales(t *testing.T) {
	sales := []sale.Sale{
		{Status: sale.StatusClosed, Commission: d("10")},
		{Status: sale.StatusClosed, Commission: d("15")},
		{Status: sale.StatusClosed, Commission: d("25.5")},
		{Status: sale.StatusOpen, Commission: d("100")},
	}

	agg := Summarize(sales)
	assert.Equal(t, int64(3), agg.ClosedCount)
	assert.True(t, agg.CommissionTotal.Equal(d("50.5")))

	m := ComputeHistorical(agg, 8)
	assert.True(t, m.Commission.Equal(d("50.5")))
	assert.True(t, m.SalesPerHour.Equal(d("0.375")))
}

func TestSummarize_StatusFlipChangesOutput(t *testing.T) {
	sales := []sale.Sale{
		{Status: sale.StatusClosed, Commission: d("10")},
		{Status: sale.StatusOpen, Commission: d("20")},
	}
	before := ComputeHistorical(Summarize(sales), 8)

	sales[1].Status = sale.StatusClosed
	flipped := ComputeHistorical(Summarize(sales), 8)
	assert.False(t, before.Commission.Equal(flipped.Commission))
	assert.True(t, flipped.Commission.Equal(d("30")))

	sales[1].Status = sale.StatusOpen
	back := ComputeHistorical(Summarize(sales), 8)
	assert.True(t, back.Commission.Equal(before.Commission))
	assert.True(t, back.SalesPerHour.Equal(before.SalesPerHour))
}

func TestComputeHistorical_Deterministic(t *testing.T) {
	agg := sale.Aggregate{ClosedCount: 7, CommissionTotal: d("123.456")}
	first := ComputeHistorical(agg, 6.5)
	for i := 0; i < 50; i++ {
		again := ComputeHistorical(agg, 6.5)
		assert.True(t, first.SalesPerHour.Equal(again.SalesPerHour))
		assert.True(t, first.Commission.Equal(again.Commission))
	}
	assert.True(t, first.Commission.Equal(d("123.46")))
}
