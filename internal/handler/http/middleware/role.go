package middleware

import (
	"net/http"

	"github.com/salesverse/salesverse-backend-go/internal/domain/employee"
	"github.com/salesverse/salesverse-backend-go/internal/handler/http/response"
)

// RequireManager requires manager role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok || !session.IsManager() {
			response.HandleError(w, employee.ErrManagerRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
