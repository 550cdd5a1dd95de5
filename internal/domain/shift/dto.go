package shift

import (
	"time"

	"github.com/salesverse/salesverse-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// SHIFT LEDGER DTOs
// ========================================

type RecordLoginRequest struct {
	EmployeeID        string
	LoginDate         time.Time
	LoginTime         time.Time
	DefaultShiftHours float64
}

func (r *RecordLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.LoginDate.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "login_date",
			Message: "login_date is required",
		})
	}
	if r.LoginTime.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "login_time",
			Message: "login_time is required",
		})
	}
	if r.DefaultShiftHours < MinShiftHours || r.DefaultShiftHours > MaxShiftHours {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_duration",
			Message: "shift_duration must be between 1 and 24 hours",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetShiftDurationRequest overrides one day's shift length. EmployeeID and
// Date are optional in the body and default to the caller and the target's
// local today.
type SetShiftDurationRequest struct {
	ActorID    string  `json:"-"`
	ActorRole  string  `json:"-"`
	Timezone   string  `json:"-"`
	EmployeeID string  `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"` // YYYY-MM-DD
	Hours      float64 `json:"hours"`
}

func (r *SetShiftDurationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if r.Date != nil && *r.Date != "" {
		if _, valid := validator.IsValidDate(*r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.Hours < MinShiftHours || r.Hours > MaxShiftHours {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be between 1 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetShiftDurationResponse struct {
	EmployeeID         string           `json:"employee_id"`
	Date               string           `json:"date"`
	ShiftDurationHours float64          `json:"shift_duration_hours"`
	Metrics            *MetricsResponse `json:"metrics,omitempty"`
	MetricsStale       bool             `json:"metrics_stale"`
	Warning            string           `json:"warning,omitempty"`
}

type MetricsResponse struct {
	SalesPerHour decimal.Decimal `json:"sales_per_hour"`
	Commission   decimal.Decimal `json:"commission"`
}

func NewMetricsResponse(m Metrics) *MetricsResponse {
	return &MetricsResponse{SalesPerHour: m.SalesPerHour, Commission: m.Commission}
}

type DailyLogResponse struct {
	ID                 string           `json:"id"`
	EmployeeID         string           `json:"employee_id"`
	EmployeeName       *string          `json:"employee_name,omitempty"`
	CampaignName       *string          `json:"campaign_name,omitempty"`
	LoginDate          string           `json:"login_date"`
	LoginTime          string           `json:"login_time"`
	LogoutTime         *string          `json:"logout_time,omitempty"`
	ShiftDurationHours float64          `json:"shift_duration_hours"`
	SalesPerHour       *decimal.Decimal `json:"sales_per_hour"`
	Commission         *decimal.Decimal `json:"commission"`
}

// NewDailyLogResponse renders an entry; metrics that were never computed stay null.
func NewDailyLogResponse(e ShiftEntry) DailyLogResponse {
	var logout *string
	if e.LogoutTime != nil {
		formatted := e.LogoutTime.Format(time.RFC3339)
		logout = &formatted
	}
	return DailyLogResponse{
		ID:                 e.ID,
		EmployeeID:         e.EmployeeID,
		EmployeeName:       e.EmployeeName,
		CampaignName:       e.CampaignName,
		LoginDate:          e.LoginDate.Format("2006-01-02"),
		LoginTime:          e.LoginTime.Format(time.RFC3339),
		LogoutTime:         logout,
		ShiftDurationHours: e.ShiftDurationHours,
		SalesPerHour:       nullDecimalPtr(e.SalesPerHour),
		Commission:         nullDecimalPtr(e.Commission),
	}
}

type ChartPointResponse struct {
	LoginDate    string           `json:"login_date"`
	SalesPerHour *decimal.Decimal `json:"sales_per_hour"`
}

// ========================================
// DAILY LOG QUERY DTOs
// ========================================

type LeaderboardRequest struct {
	Timezone string  `json:"-"`
	Date     *string `json:"date,omitempty"` // YYYY-MM-DD, defaults to local today
}

type HistoryRequest struct {
	Timezone   string  `json:"-"`
	EmployeeID string  `json:"employee_id"`
	Until      *string `json:"until,omitempty"` // YYYY-MM-DD, defaults to local today
}

type ChartRequest struct {
	Timezone        string  `json:"-"`
	EmployeeID      string  `json:"employee_id"`
	Before          *string `json:"before,omitempty"` // YYYY-MM-DD, defaults to local today
	WithMetricsOnly bool    `json:"-"`
}

func NewChartPointResponse(p ChartPoint) ChartPointResponse {
	return ChartPointResponse{
		LoginDate:    p.LoginDate.Format("2006-01-02"),
		SalesPerHour: nullDecimalPtr(p.SalesPerHour),
	}
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

// validateOptionalDate is shared by the query DTOs.
func validateOptionalDate(field string, value *string) validator.ValidationErrors {
	if value == nil || *value == "" {
		return nil
	}
	if _, valid := validator.IsValidDate(*value); !valid {
		return validator.ValidationErrors{{
			Field:   field,
			Message: field + " must be in YYYY-MM-DD format",
		}}
	}
	return nil
}

func validateEmployeeID(id string) validator.ValidationErrors {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "employee_id", Message: "employee_id is required"}}
	}
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: "employee_id", Message: "employee_id must be a valid UUID"}}
	}
	return nil
}

func (r *LeaderboardRequest) Validate() error {
	if errs := validateOptionalDate("date", r.Date); len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *HistoryRequest) Validate() error {
	errs := validateEmployeeID(r.EmployeeID)
	errs = append(errs, validateOptionalDate("until", r.Until)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *ChartRequest) Validate() error {
	errs := validateEmployeeID(r.EmployeeID)
	errs = append(errs, validateOptionalDate("before", r.Before)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}
