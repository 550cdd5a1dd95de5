package response

import (
	"errors"
	"net/http"

	"github.com/salesverse/salesverse-backend-go/internal/domain/auth"
	"github.com/salesverse/salesverse-backend-go/internal/domain/employee"
	"github.com/salesverse/salesverse-backend-go/internal/domain/sale"
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/clock"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrManagerRequired):
		Forbidden(w, "Manager access required")

	// Shift ledger
	case errors.Is(err, shift.ErrShiftEntryNotFound):
		NotFound(w, "No daily log found for this employee and date")
	case errors.Is(err, shift.ErrInvalidShiftDuration):
		ValidationError(w, map[string]string{"hours": shift.ErrInvalidShiftDuration.Error()})
	case errors.Is(err, shift.ErrForbidden):
		Forbidden(w, err.Error())
	case errors.Is(err, clock.ErrInvalidTimezone):
		BadRequest(w, "Session timezone is missing or unknown", nil)

	// Sale ledger
	case errors.Is(err, sale.ErrSaleNotFound):
		NotFound(w, "Sale not found")
	case errors.Is(err, sale.ErrCampaignNotFound):
		NotFound(w, "Campaign not found")
	case errors.Is(err, sale.ErrSaleNotSaved):
		BadRequest(w, sale.ErrSaleNotSaved.Error(), nil)
	case errors.Is(err, sale.ErrSaleNotEdited):
		BadRequest(w, sale.ErrSaleNotEdited.Error(), nil)
	case errors.Is(err, sale.ErrSaleNotDeleted):
		BadRequest(w, sale.ErrSaleNotDeleted.Error(), nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
