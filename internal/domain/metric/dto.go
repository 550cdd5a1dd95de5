package metric

import (
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/validator"
)

// RecomputeRequest names one bucket for a manager-triggered repair.
type RecomputeRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
}

func (r *RecomputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecomputeResponse struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	shift.MetricsResponse
}
