package middleware

import (
	"context"
	"net/http"

	"github.com/salesverse/salesverse-backend-go/internal/domain/employee"
)

type sessionKey struct{}

// Session is the authenticated caller as read from the access token.
type Session struct {
	EmployeeID string
	Role       employee.Role
	Timezone   string
	Token      string
	ExpiresAt  int64
}

func (s Session) IsManager() bool {
	return s.Role == employee.RoleManager
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by AuthRequired.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

// MustSession is for handlers mounted behind AuthRequired.
func MustSession(r *http.Request) Session {
	s, _ := SessionFromContext(r.Context())
	return s
}
