package metric

import (
	"context"
	"testing"
	"time"

	"github.com/salesverse/salesverse-backend-go/internal/domain/employee"
	"github.com/salesverse/salesverse-backend-go/internal/domain/sale"
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/clock"
	"github.com/salesverse/salesverse-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTZ = "America/Toronto"

type fixture struct {
	store    *memory.Store
	emp      employee.Employee
	campaign string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	campaign := store.AddCampaign("Fibre")
	emp := store.AddEmployee(employee.Employee{
		FirstName:  "Ana",
		LastName:   "Lima",
		Email:      "ana@example.com",
		Role:       employee.RoleSalesAssociate,
		CampaignID: &campaign,
		Timezone:   testTZ,
	})
	return fixture{store: store, emp: emp, campaign: campaign}
}

func (f fixture) openLog(t *testing.T, date time.Time, login time.Time, hours float64) {
	t.Helper()
	_, _, err := f.store.Shifts().CreateIfAbsent(context.Background(), shift.ShiftEntry{
		EmployeeID:         f.emp.ID,
		LoginDate:          date,
		LoginTime:          login,
		ShiftDurationHours: hours,
	})
	require.NoError(t, err)
}

func (f fixture) addSale(t *testing.T, date time.Time, commission string, status sale.Status) sale.Sale {
	t.Helper()
	s, err := f.store.Sales().Create(context.Background(), sale.Sale{
		EmployeeID: f.emp.ID,
		CampaignID: f.campaign,
		EntryDate:  date,
		Commission: decimal.RequireFromString(commission),
		Status:     status,
	})
	require.NoError(t, err)
	return s
}

func (f fixture) service(now time.Time) *MetricServiceImpl {
	return NewMetricService(f.store, f.store.Shifts(), f.store.Sales(), clock.NewFixed(now)).(*MetricServiceImpl)
}

func TestRecomputeHistorical_CommissionExcludesOpen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	date := clock.DateOf(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC))
	f.openLog(t, date, time.Date(2025, 3, 7, 14, 0, 0, 0, time.UTC), 8)

	f.addSale(t, date, "10", sale.StatusClosed)
	f.addSale(t, date, "15", sale.StatusClosed)
	f.addSale(t, date, "25.5", sale.StatusClosed)
	f.addSale(t, date, "100", sale.StatusOpen)

	svc := f.service(time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC))
	m, err := svc.RecomputeHistorical(ctx, f.emp.ID, date)
	require.NoError(t, err)
	assert.True(t, m.Commission.Equal(decimal.RequireFromString("50.5")))
	assert.True(t, m.SalesPerHour.Equal(decimal.RequireFromString("0.375")))

	stored, err := f.store.Shifts().GetByEmployeeAndDate(ctx, f.emp.ID, date)
	require.NoError(t, err)
	assert.True(t, stored.Commission.Decimal.Equal(m.Commission))
	assert.True(t, stored.SalesPerHour.Decimal.Equal(m.SalesPerHour))
}

func TestRecomputeHistorical_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	date := clock.DateOf(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC))
	f.openLog(t, date, time.Date(2025, 3, 7, 14, 0, 0, 0, time.UTC), 6)
	f.addSale(t, date, "12.34", sale.StatusClosed)
	f.addSale(t, date, "7", sale.StatusClosed)

	svc := f.service(time.Now())
	first, err := svc.RecomputeHistorical(ctx, f.emp.ID, date)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := svc.RecomputeHistorical(ctx, f.emp.ID, date)
		require.NoError(t, err)
		assert.True(t, first.SalesPerHour.Equal(again.SalesPerHour))
		assert.True(t, first.Commission.Equal(again.Commission))
	}
}

func TestRecomputeLive_ClampsElapsedHours(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	login := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC) // 09:00 in Toronto
	date := clock.DateOf(login.In(time.FixedZone("EDT", -4*3600)))
	f.openLog(t, date, login, 8)
	f.addSale(t, date, "20", sale.StatusClosed)
	f.addSale(t, date, "20", sale.StatusClosed)

	cases := []struct {
		elapsed time.Duration
		want    string
	}{
		{12 * time.Minute, "2"},  // divisor 1
		{5 * time.Hour, "0.4"},   // divisor 5
		{9 * time.Hour, "0.25"},  // divisor 8
	}
	for _, c := range cases {
		m, err := f.service(login.Add(c.elapsed)).RecomputeLive(ctx, f.emp.ID, date, testTZ)
		require.NoError(t, err)
		assert.True(t, m.SalesPerHour.Equal(decimal.RequireFromString(c.want)), "elapsed %s: got %s", c.elapsed, m.SalesPerHour)
		assert.True(t, m.Commission.Equal(decimal.NewFromInt(40)))
	}
}

func TestRecompute_MissingLog(t *testing.T) {
	f := newFixture(t)
	svc := f.service(time.Now())

	_, err := svc.RecomputeHistorical(context.Background(), f.emp.ID, clock.DateOf(time.Now()))
	assert.ErrorIs(t, err, shift.ErrShiftEntryNotFound)
}

func TestRecomputeLive_InvalidTimezone(t *testing.T) {
	f := newFixture(t)
	date := clock.DateOf(time.Now())
	f.openLog(t, date, time.Now(), 8)

	_, err := f.service(time.Now()).RecomputeLive(context.Background(), f.emp.ID, date, "")
	assert.ErrorIs(t, err, clock.ErrInvalidTimezone)
}

func TestRepair_SkipsTodayAndFixesPastBuckets(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC) // 14:00 in Toronto
	today := clock.DateOf(now.In(time.FixedZone("EDT", -4*3600)))
	yesterday := today.AddDate(0, 0, -1)

	f.openLog(t, yesterday, yesterday.Add(13*time.Hour), 4)
	f.openLog(t, today, today.Add(13*time.Hour), 8)
	f.addSale(t, yesterday, "30", sale.StatusClosed)
	f.addSale(t, today, "30", sale.StatusClosed)

	report, err := f.service(now).Repair(ctx, today.AddDate(0, 0, -3))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.Recomputed)
	assert.Equal(t, 1, report.SkippedLive)
	assert.Equal(t, 0, report.Failed)

	past, err := f.store.Shifts().GetByEmployeeAndDate(ctx, f.emp.ID, yesterday)
	require.NoError(t, err)
	require.True(t, past.SalesPerHour.Valid)
	assert.True(t, past.SalesPerHour.Decimal.Equal(decimal.RequireFromString("0.25")))

	live, err := f.store.Shifts().GetByEmployeeAndDate(ctx, f.emp.ID, today)
	require.NoError(t, err)
	assert.False(t, live.SalesPerHour.Valid)
}
