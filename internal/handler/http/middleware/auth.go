package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/salesverse/salesverse-backend-go/internal/domain/auth"
	"github.com/salesverse/salesverse-backend-go/internal/domain/employee"
	"github.com/salesverse/salesverse-backend-go/internal/handler/http/response"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a live access token and stores the
// caller's Session on the request context.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			raw := jwtauth.TokenFromHeader(r)
			if raw == "" {
				raw = jwtauth.TokenFromQuery(r)
			}
			if jwtService.IsTokenRevoked(raw) {
				response.Unauthorized(w, "Token has been revoked")
				return
			}

			employeeID, _ := claims["employee_id"].(string)
			role, _ := claims["role"].(string)
			timezone, _ := claims["timezone"].(string)
			if employeeID == "" || timezone == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			session := Session{
				EmployeeID: employeeID,
				Role:       employee.Role(role),
				Timezone:   timezone,
				Token:      raw,
			}
			if exp := token.Expiration(); !exp.IsZero() {
				session.ExpiresAt = exp.Unix()
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		}
		return http.HandlerFunc(hfn)
	}
}
