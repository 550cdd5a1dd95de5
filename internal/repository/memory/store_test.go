package memory

import (
	"context"
	"testing"
	"time"

	"github.com/salesverse/salesverse-backend-go/internal/domain/employee"
	"github.com/salesverse/salesverse-backend-go/internal/domain/sale"
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestShiftStore_CreateIfAbsent_KeepsFirstEntry(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	emp := store.AddEmployee(employee.Employee{FirstName: "Ana", Role: employee.RoleSalesAssociate, Timezone: "UTC"})
	shifts := store.Shifts()

	first := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	created, ok, err := shifts.CreateIfAbsent(ctx, shift.ShiftEntry{EmployeeID: emp.ID, LoginDate: day("2025-03-10"), LoginTime: first, ShiftDurationHours: 8})
	require.NoError(t, err)
	assert.True(t, ok)

	again, ok, err := shifts.CreateIfAbsent(ctx, shift.ShiftEntry{EmployeeID: emp.ID, LoginDate: day("2025-03-10"), LoginTime: first.Add(3 * time.Hour), ShiftDurationHours: 6})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, created.ID, again.ID)
	assert.True(t, again.LoginTime.Equal(first))
	assert.Equal(t, 8.0, again.ShiftDurationHours)
}

func TestShiftStore_ListChart_MostRecentOldestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	emp := store.AddEmployee(employee.Employee{FirstName: "Ana", Role: employee.RoleSalesAssociate, Timezone: "UTC"})
	shifts := store.Shifts()

	start := day("2025-03-01")
	for i := 0; i < 12; i++ {
		d := start.AddDate(0, 0, i)
		_, _, err := shifts.CreateIfAbsent(ctx, shift.ShiftEntry{EmployeeID: emp.ID, LoginDate: d, LoginTime: d.Add(9 * time.Hour), ShiftDurationHours: 8})
		require.NoError(t, err)
		if i%2 == 0 {
			require.NoError(t, shifts.UpdateMetrics(ctx, emp.ID, d, shift.Metrics{SalesPerHour: decimal.NewFromInt(int64(i)), Commission: decimal.Zero}))
		}
	}

	points, err := shifts.ListChart(ctx, emp.ID, day("2025-03-12"), 9, false)
	require.NoError(t, err)
	require.Len(t, points, 9)
	assert.Equal(t, "2025-03-03", points[0].LoginDate.Format("2006-01-02"))
	assert.Equal(t, "2025-03-11", points[8].LoginDate.Format("2006-01-02"))

	points, err = shifts.ListChart(ctx, emp.ID, day("2025-03-12"), 9, true)
	require.NoError(t, err)
	require.Len(t, points, 6)
	for _, p := range points {
		assert.True(t, p.SalesPerHour.Valid)
	}
}

func TestSaleStore_AggregateClosed(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	emp := store.AddEmployee(employee.Employee{FirstName: "Ana", Role: employee.RoleSalesAssociate, Timezone: "UTC"})
	campaign := store.AddCampaign("Fibre")
	sales := store.Sales()

	for _, c := range []struct {
		commission string
		status     sale.Status
		date       string
	}{
		{"10", sale.StatusClosed, "2025-03-10"},
		{"15", sale.StatusClosed, "2025-03-10"},
		{"25.5", sale.StatusClosed, "2025-03-10"},
		{"100", sale.StatusOpen, "2025-03-10"},
		{"70", sale.StatusClosed, "2025-03-09"},
	} {
		_, err := sales.Create(ctx, sale.Sale{
			EmployeeID: emp.ID,
			CampaignID: campaign,
			EntryDate:  day(c.date),
			Commission: decimal.RequireFromString(c.commission),
			Status:     c.status,
		})
		require.NoError(t, err)
	}

	agg, err := sales.AggregateClosed(ctx, emp.ID, day("2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), agg.ClosedCount)
	assert.True(t, agg.CommissionTotal.Equal(decimal.RequireFromString("50.5")))
}

func TestSaleStore_DeleteRequiresMatchingBucket(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	emp := store.AddEmployee(employee.Employee{FirstName: "Ana", Role: employee.RoleSalesAssociate, Timezone: "UTC"})
	campaign := store.AddCampaign("Fibre")
	sales := store.Sales()

	created, err := sales.Create(ctx, sale.Sale{EmployeeID: emp.ID, CampaignID: campaign, EntryDate: day("2025-03-10"), Status: sale.StatusOpen})
	require.NoError(t, err)

	_, err = sales.Delete(ctx, created.ID, emp.ID, day("2025-03-11"))
	assert.ErrorIs(t, err, sale.ErrSaleNotFound)

	_, err = sales.Delete(ctx, created.ID, "someone-else", day("2025-03-10"))
	assert.ErrorIs(t, err, sale.ErrSaleNotFound)

	deleted, err := sales.Delete(ctx, created.ID, emp.ID, day("2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
}

func TestSaleStore_UnknownCampaign(t *testing.T) {
	store := NewStore()
	emp := store.AddEmployee(employee.Employee{FirstName: "Ana", Role: employee.RoleSalesAssociate, Timezone: "UTC"})

	_, err := store.Sales().Create(context.Background(), sale.Sale{EmployeeID: emp.ID, CampaignID: "missing", Status: sale.StatusOpen})
	assert.ErrorIs(t, err, sale.ErrCampaignNotFound)
}

func TestStore_WithinTransactionIsReentrant(t *testing.T) {
	store := NewStore()
	calls := 0
	err := store.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return store.WithinTransaction(ctx, func(context.Context) error {
			calls++
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
