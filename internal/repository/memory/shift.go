package memory

import (
	"context"
	"sort"
	"time"

	"github.com/salesverse/salesverse-backend-go/internal/domain/employee"
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

type ShiftStore struct {
	s *Store
}

var _ shift.ShiftRepository = (*ShiftStore)(nil)

func (r *ShiftStore) CreateIfAbsent(_ context.Context, entry shift.ShiftEntry) (shift.ShiftEntry, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[entry.EmployeeID]; !ok {
		return shift.ShiftEntry{}, false, employee.ErrEmployeeNotFound
	}
	k := keyOf(entry.EmployeeID, entry.LoginDate)
	if existing, ok := r.s.logs[k]; ok {
		return existing, false, nil
	}

	now := r.s.now()
	entry.ID = newID()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	r.s.logs[k] = entry
	return entry, true, nil
}

func (r *ShiftStore) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (shift.ShiftEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	entry, ok := r.s.logs[keyOf(employeeID, date)]
	if !ok {
		return shift.ShiftEntry{}, shift.ErrShiftEntryNotFound
	}
	return entry, nil
}

// GetForUpdate relies on the transaction mutex held by the caller.
func (r *ShiftStore) GetForUpdate(ctx context.Context, employeeID string, date time.Time) (shift.ShiftEntry, error) {
	return r.GetByEmployeeAndDate(ctx, employeeID, date)
}

func (r *ShiftStore) SetLogout(_ context.Context, employeeID string, date time.Time, logoutAt time.Time) error {
	return r.update(employeeID, date, func(e *shift.ShiftEntry) {
		e.LogoutTime = &logoutAt
	})
}

func (r *ShiftStore) UpdateShiftDuration(_ context.Context, employeeID string, date time.Time, hours float64) (float64, error) {
	if hours < shift.MinShiftHours || hours > shift.MaxShiftHours {
		return 0, shift.ErrInvalidShiftDuration
	}
	err := r.update(employeeID, date, func(e *shift.ShiftEntry) {
		e.ShiftDurationHours = hours
	})
	if err != nil {
		return 0, err
	}
	return hours, nil
}

func (r *ShiftStore) UpdateMetrics(_ context.Context, employeeID string, date time.Time, metrics shift.Metrics) error {
	return r.update(employeeID, date, func(e *shift.ShiftEntry) {
		e.SalesPerHour = decimal.NewNullDecimal(metrics.SalesPerHour)
		e.Commission = decimal.NewNullDecimal(metrics.Commission)
	})
}

func (r *ShiftStore) update(employeeID string, date time.Time, fn func(*shift.ShiftEntry)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := keyOf(employeeID, date)
	entry, ok := r.s.logs[k]
	if !ok {
		return shift.ErrShiftEntryNotFound
	}
	fn(&entry)
	entry.UpdatedAt = r.s.now()
	r.s.logs[k] = entry
	return nil
}

func (r *ShiftStore) Leaderboard(_ context.Context, date time.Time, limit int) ([]shift.ShiftEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	day := date.Format("2006-01-02")
	var result []shift.ShiftEntry
	for k, entry := range r.s.logs {
		if k.Date != day {
			continue
		}
		emp, ok := r.s.employees[entry.EmployeeID]
		if !ok || emp.Role != employee.RoleSalesAssociate || emp.CampaignID == nil {
			continue
		}
		campaign, ok := r.s.campaigns[*emp.CampaignID]
		if !ok {
			continue
		}
		name := emp.FullName()
		entry.EmployeeName = &name
		entry.CampaignName = &campaign
		result = append(result, entry)
	}

	sortBySalesPerHour(result)
	return truncate(result, limit), nil
}

func (r *ShiftStore) ListTopByEmployee(_ context.Context, employeeID string, until time.Time, limit int) ([]shift.ShiftEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []shift.ShiftEntry
	for _, entry := range r.s.logs {
		if entry.EmployeeID == employeeID && !entry.LoginDate.After(until) {
			result = append(result, entry)
		}
	}
	sortBySalesPerHour(result)
	return truncate(result, limit), nil
}

func (r *ShiftStore) ListChart(_ context.Context, employeeID string, before time.Time, limit int, withMetricsOnly bool) ([]shift.ChartPoint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var entries []shift.ShiftEntry
	for _, entry := range r.s.logs {
		if entry.EmployeeID != employeeID || !entry.LoginDate.Before(before) {
			continue
		}
		if withMetricsOnly && !entry.SalesPerHour.Valid {
			continue
		}
		entries = append(entries, entry)
	}

	// newest first, cut, then flip to oldest first
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LoginDate.After(entries[j].LoginDate)
	})
	entries = truncate(entries, limit)

	points := make([]shift.ChartPoint, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		points = append(points, shift.ChartPoint{
			LoginDate:    entries[i].LoginDate,
			SalesPerHour: entries[i].SalesPerHour,
		})
	}
	return points, nil
}

func (r *ShiftStore) ListBucketsSince(_ context.Context, since time.Time) ([]shift.Bucket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var buckets []shift.Bucket
	for _, entry := range r.s.logs {
		if entry.LoginDate.Before(since) {
			continue
		}
		buckets = append(buckets, shift.Bucket{
			EmployeeID: entry.EmployeeID,
			Date:       entry.LoginDate,
			Timezone:   r.s.employees[entry.EmployeeID].Timezone,
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].Date.Equal(buckets[j].Date) {
			return buckets[i].Date.Before(buckets[j].Date)
		}
		return buckets[i].EmployeeID < buckets[j].EmployeeID
	})
	return buckets, nil
}

// sortBySalesPerHour orders highest first with NULL metrics last, as Postgres
// does for DESC NULLS LAST.
func sortBySalesPerHour(entries []shift.ShiftEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].SalesPerHour, entries[j].SalesPerHour
		if a.Valid != b.Valid {
			return a.Valid
		}
		if !a.Valid || a.Decimal.Equal(b.Decimal) {
			return entries[i].LoginDate.After(entries[j].LoginDate)
		}
		return a.Decimal.GreaterThan(b.Decimal)
	})
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
