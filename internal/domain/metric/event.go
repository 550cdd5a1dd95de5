package metric

import "github.com/shopspring/decimal"

const (
	EventMetricsUpdated = "metrics_updated"

	// LeaderboardTopic receives every bucket update.
	LeaderboardTopic = "leaderboard"
)

// EmployeeTopic receives updates for one employee's buckets.
func EmployeeTopic(employeeID string) string {
	return "employee:" + employeeID
}

type MetricsUpdatedEvent struct {
	EmployeeID   string          `json:"employee_id"`
	Date         string          `json:"date"`
	SalesPerHour decimal.Decimal `json:"sales_per_hour"`
	Commission   decimal.Decimal `json:"commission"`
	Live         bool            `json:"live"`
}
