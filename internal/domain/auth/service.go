package auth

import (
	"context"
)

type AuthService interface {
	// Login verifies credentials, issues an access token and opens the
	// employee's daily log for their local today.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Logout stamps the logout time on today's daily log and revokes the token.
	Logout(ctx context.Context, req LogoutRequest) error
}
