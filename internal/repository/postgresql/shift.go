package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salesverse/salesverse-backend-go/internal/domain/employee"
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

const shiftColumns = `
	dl.id, dl.employee_id, dl.login_date, dl.login_time, dl.logout_time,
	dl.shift_duration::float8, dl.sales_per_hour, dl.commission, dl.created_at, dl.updated_at
`

// CreateIfAbsent implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) CreateIfAbsent(ctx context.Context, entry shift.ShiftEntry) (shift.ShiftEntry, bool, error) {
	q := GetQuerier(ctx, s.db)

	id, err := newID()
	if err != nil {
		return shift.ShiftEntry{}, false, fmt.Errorf("failed to generate daily log id: %w", err)
	}

	query := `
		INSERT INTO daily_logs (id, employee_id, login_date, login_time, shift_duration)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT daily_logs_employee_day_key DO NOTHING
		RETURNING id
	`

	var insertedID string
	err = q.QueryRow(ctx, query, id, entry.EmployeeID, entry.LoginDate, entry.LoginTime, entry.ShiftDurationHours).Scan(&insertedID)
	created := true
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			switch code, _ := pgErrorCode(err); code {
			case pgForeignKeyViolation:
				return shift.ShiftEntry{}, false, employee.ErrEmployeeNotFound
			case pgCheckViolation:
				return shift.ShiftEntry{}, false, shift.ErrInvalidShiftDuration
			}
			return shift.ShiftEntry{}, false, fmt.Errorf("failed to create daily log: %w", err)
		}
		// another login won the race for this day
		created = false
	}

	stored, err := s.GetByEmployeeAndDate(ctx, entry.EmployeeID, entry.LoginDate)
	if err != nil {
		return shift.ShiftEntry{}, false, err
	}
	return stored, created, nil
}

// GetByEmployeeAndDate implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (shift.ShiftEntry, error) {
	return s.get(ctx, employeeID, date, "")
}

// GetForUpdate implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) GetForUpdate(ctx context.Context, employeeID string, date time.Time) (shift.ShiftEntry, error) {
	return s.get(ctx, employeeID, date, "FOR UPDATE")
}

func (s *shiftRepositoryImpl) get(ctx context.Context, employeeID string, date time.Time, lock string) (shift.ShiftEntry, error) {
	q := GetQuerier(ctx, s.db)

	query := `SELECT ` + shiftColumns + `
		FROM daily_logs dl
		WHERE dl.employee_id = $1 AND dl.login_date = $2
	` + lock

	entry, err := scanShiftEntry(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftEntry{}, shift.ErrShiftEntryNotFound
		}
		return shift.ShiftEntry{}, fmt.Errorf("failed to get daily log: %w", err)
	}
	return entry, nil
}

// SetLogout implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) SetLogout(ctx context.Context, employeeID string, date time.Time, logoutAt time.Time) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE daily_logs
		SET logout_time = $3, updated_at = NOW()
		WHERE employee_id = $1 AND login_date = $2
	`

	tag, err := q.Exec(ctx, query, employeeID, date, logoutAt)
	if err != nil {
		return fmt.Errorf("failed to set logout time: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftEntryNotFound
	}
	return nil
}

// UpdateShiftDuration implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) UpdateShiftDuration(ctx context.Context, employeeID string, date time.Time, hours float64) (float64, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE daily_logs
		SET shift_duration = $3, updated_at = NOW()
		WHERE employee_id = $1 AND login_date = $2
		RETURNING shift_duration::float8
	`

	var stored float64
	err := q.QueryRow(ctx, query, employeeID, date, hours).Scan(&stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, shift.ErrShiftEntryNotFound
		}
		if code, _ := pgErrorCode(err); code == pgCheckViolation {
			return 0, shift.ErrInvalidShiftDuration
		}
		return 0, fmt.Errorf("failed to update shift duration: %w", err)
	}
	return stored, nil
}

// UpdateMetrics implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) UpdateMetrics(ctx context.Context, employeeID string, date time.Time, metrics shift.Metrics) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE daily_logs
		SET sales_per_hour = $3, commission = $4, updated_at = NOW()
		WHERE employee_id = $1 AND login_date = $2
	`

	tag, err := q.Exec(ctx, query, employeeID, date, metrics.SalesPerHour, metrics.Commission)
	if err != nil {
		return fmt.Errorf("failed to update daily log metrics: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftEntryNotFound
	}
	return nil
}

// Leaderboard implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) Leaderboard(ctx context.Context, date time.Time, limit int) ([]shift.ShiftEntry, error) {
	q := GetQuerier(ctx, s.db)

	query := `SELECT ` + shiftColumns + `,
			CONCAT_WS(' ', e.first_name, NULLIF(e.last_name, '')) AS employee_name,
			c.name AS campaign_name
		FROM daily_logs dl
		INNER JOIN employees e ON e.id = dl.employee_id
		INNER JOIN campaigns c ON c.id = e.campaign_id
		WHERE dl.login_date = $1 AND e.employee_role = $2
		ORDER BY dl.sales_per_hour DESC NULLS LAST, dl.employee_id
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, date, employee.RoleSalesAssociate, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []shift.ShiftEntry
	for rows.Next() {
		var entry shift.ShiftEntry
		err := rows.Scan(
			&entry.ID, &entry.EmployeeID, &entry.LoginDate, &entry.LoginTime, &entry.LogoutTime,
			&entry.ShiftDurationHours, &entry.SalesPerHour, &entry.Commission, &entry.CreatedAt, &entry.UpdatedAt,
			&entry.EmployeeName, &entry.CampaignName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard rows: %w", err)
	}
	return entries, nil
}

// ListTopByEmployee implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) ListTopByEmployee(ctx context.Context, employeeID string, until time.Time, limit int) ([]shift.ShiftEntry, error) {
	q := GetQuerier(ctx, s.db)

	query := `SELECT ` + shiftColumns + `
		FROM daily_logs dl
		WHERE dl.employee_id = $1 AND dl.login_date <= $2
		ORDER BY dl.sales_per_hour DESC NULLS LAST, dl.login_date DESC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, employeeID, until, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily log history: %w", err)
	}
	defer rows.Close()

	var entries []shift.ShiftEntry
	for rows.Next() {
		entry, err := scanShiftEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily log: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily logs: %w", err)
	}
	return entries, nil
}

// ListChart implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) ListChart(ctx context.Context, employeeID string, before time.Time, limit int, withMetricsOnly bool) ([]shift.ChartPoint, error) {
	q := GetQuerier(ctx, s.db)

	// most recent days first, then flipped so the chart reads left to right
	query := `
		SELECT login_date, sales_per_hour FROM (
			SELECT login_date, sales_per_hour
			FROM daily_logs
			WHERE employee_id = $1 AND login_date < $2
			  AND (NOT $3 OR sales_per_hour IS NOT NULL)
			ORDER BY login_date DESC
			LIMIT $4
		) recent
		ORDER BY login_date
	`

	rows, err := q.Query(ctx, query, employeeID, before, withMetricsOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart data: %w", err)
	}
	defer rows.Close()

	var points []shift.ChartPoint
	for rows.Next() {
		var p shift.ChartPoint
		if err := rows.Scan(&p.LoginDate, &p.SalesPerHour); err != nil {
			return nil, fmt.Errorf("failed to scan chart point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chart rows: %w", err)
	}
	return points, nil
}

// ListBucketsSince implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) ListBucketsSince(ctx context.Context, since time.Time) ([]shift.Bucket, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT dl.employee_id, dl.login_date, e.timezone
		FROM daily_logs dl
		INNER JOIN employees e ON e.id = dl.employee_id
		WHERE dl.login_date >= $1
		ORDER BY dl.login_date, dl.employee_id
	`

	rows, err := q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily log buckets: %w", err)
	}
	defer rows.Close()

	var buckets []shift.Bucket
	for rows.Next() {
		var b shift.Bucket
		if err := rows.Scan(&b.EmployeeID, &b.Date, &b.Timezone); err != nil {
			return nil, fmt.Errorf("failed to scan bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating buckets: %w", err)
	}
	return buckets, nil
}

func scanShiftEntry(row pgx.Row) (shift.ShiftEntry, error) {
	var entry shift.ShiftEntry
	err := row.Scan(
		&entry.ID, &entry.EmployeeID, &entry.LoginDate, &entry.LoginTime, &entry.LogoutTime,
		&entry.ShiftDurationHours, &entry.SalesPerHour, &entry.Commission, &entry.CreatedAt, &entry.UpdatedAt,
	)
	return entry, err
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}
