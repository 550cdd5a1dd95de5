package shift

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultShiftHours is the shift length assumed when neither the employee nor
// the configuration says otherwise.
const DefaultShiftHours = 8.0

// MinShiftHours is the shortest allowed shift. It keeps the historical
// sales-per-hour divisor strictly positive.
const MinShiftHours = 1.0

// MaxShiftHours bounds a shift to one calendar day.
const MaxShiftHours = 24.0

// ShiftEntry is one employee's log for one local calendar day.
type ShiftEntry struct {
	ID                 string
	EmployeeID         string
	LoginDate          time.Time // calendar day in the employee's timezone, midnight UTC
	LoginTime          time.Time
	LogoutTime         *time.Time
	ShiftDurationHours float64
	SalesPerHour       decimal.NullDecimal
	Commission         decimal.NullDecimal
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// DTO
	EmployeeName *string
	CampaignName *string
}

// State returns the shift parameters the metric engine needs.
func (e ShiftEntry) State() ShiftState {
	return ShiftState{
		LoginTime:          e.LoginTime,
		ShiftDurationHours: e.ShiftDurationHours,
	}
}

type ShiftState struct {
	LoginTime          time.Time
	ShiftDurationHours float64
}

// Metrics are the derived fields cached on a ShiftEntry.
type Metrics struct {
	SalesPerHour decimal.Decimal
	Commission   decimal.Decimal
}

// Bucket identifies one aggregation unit.
type Bucket struct {
	EmployeeID string
	Date       time.Time
	Timezone   string
}

// ChartPoint is one day of an employee's sales-per-hour history.
type ChartPoint struct {
	LoginDate    time.Time
	SalesPerHour decimal.NullDecimal
}
