package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/salesverse/salesverse-backend-go/internal/domain/auth"
	"github.com/salesverse/salesverse-backend-go/internal/handler/http/middleware"
	"github.com/salesverse/salesverse-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee logged in", "employee_id", tokenResponse.EmployeeID)
	response.Created(w, "Logged in successfully", tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustSession(r)

	err := a.authService.Logout(r.Context(), auth.LogoutRequest{
		Token:      session.Token,
		ExpiresAt:  session.ExpiresAt,
		EmployeeID: session.EmployeeID,
		Timezone:   session.Timezone,
	})
	if err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}
