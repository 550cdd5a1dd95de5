package shift

import (
	"context"
	"time"
)

// ShiftRepository persists daily logs. Dates are calendar days; callers
// resolve them in the employee's timezone before calling.
type ShiftRepository interface {
	// CreateIfAbsent inserts entry unless one already exists for the same
	// employee and login date. It returns the stored entry and whether it was created.
	CreateIfAbsent(ctx context.Context, entry ShiftEntry) (ShiftEntry, bool, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (ShiftEntry, error)

	// GetForUpdate reads the entry and locks its row until the surrounding
	// transaction ends. Must be called inside a transaction.
	GetForUpdate(ctx context.Context, employeeID string, date time.Time) (ShiftEntry, error)

	SetLogout(ctx context.Context, employeeID string, date time.Time, logoutAt time.Time) error
	UpdateShiftDuration(ctx context.Context, employeeID string, date time.Time, hours float64) (float64, error)
	UpdateMetrics(ctx context.Context, employeeID string, date time.Time, metrics Metrics) error

	// Leaderboard returns the top sales associates of a day by sales per hour.
	Leaderboard(ctx context.Context, date time.Time, limit int) ([]ShiftEntry, error)

	// ListTopByEmployee returns the employee's best days on or before until.
	ListTopByEmployee(ctx context.Context, employeeID string, until time.Time, limit int) ([]ShiftEntry, error)

	// ListChart returns up to limit days strictly before the given date, oldest first.
	ListChart(ctx context.Context, employeeID string, before time.Time, limit int, withMetricsOnly bool) ([]ChartPoint, error)

	// ListBucketsSince returns every bucket on or after since, with the owner's timezone.
	ListBucketsSince(ctx context.Context, since time.Time) ([]Bucket, error)
}
