package shift

import (
	"context"
	"time"
)

// ShiftService is the Shift Ledger: one daily log per employee per local day.
type ShiftService interface {
	// RecordLogin opens today's log unless one exists. A second login on the
	// same day keeps the original login time and shift.
	RecordLogin(ctx context.Context, req RecordLoginRequest) (ShiftEntry, bool, error)

	// RecordLogout stamps the logout time on the log of the employee's local
	// day at logoutAt. A missing log is logged and ignored.
	RecordLogout(ctx context.Context, employeeID string, timezone string, logoutAt time.Time) error

	GetShiftState(ctx context.Context, employeeID string, loginDate time.Time) (ShiftState, error)

	SetShiftDuration(ctx context.Context, req SetShiftDurationRequest) (SetShiftDurationResponse, error)

	GetToday(ctx context.Context, employeeID string, timezone string) (DailyLogResponse, error)
	Leaderboard(ctx context.Context, req LeaderboardRequest) ([]DailyLogResponse, error)
	History(ctx context.Context, req HistoryRequest) ([]DailyLogResponse, error)
	Chart(ctx context.Context, req ChartRequest) ([]ChartPointResponse, error)
}
