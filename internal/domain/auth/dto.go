package auth

import (
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	// Email
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if len(r.Email) > 254 {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must not exceed 254 characters",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LogoutRequest is built from the session, never from the request body.
type LogoutRequest struct {
	Token      string
	ExpiresAt  int64
	EmployeeID string
	Timezone   string
}

type TokenResponse struct {
	AccessToken          string                  `json:"access_token"`
	AccessTokenExpiresIn int64                   `json:"access_token_expires_in"`
	EmployeeID           string                  `json:"employee_id"`
	Role                 string                  `json:"role"`
	Timezone             string                  `json:"timezone"`
	DailyLog             *shift.DailyLogResponse `json:"daily_log,omitempty"`
}
