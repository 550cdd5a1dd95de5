package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/salesverse/salesverse-backend-go/internal/domain/auth"
	"github.com/salesverse/salesverse-backend-go/internal/domain/employee"
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/clock"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwt.Service
	shiftService      shift.ShiftService
	clock             clock.Clock
	defaultShiftHours float64
}

func NewAuthService(
	employeeRepository employee.EmployeeRepository,
	jwtService jwt.Service,
	shiftService shift.ShiftService,
	clk clock.Clock,
	defaultShiftHours float64,
) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
		shiftService:       shiftService,
		clock:              clk,
		defaultShiftHours:  defaultShiftHours,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	employeeData, err := a.EmployeeRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employeeData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	now, err := a.clock.LocalNow(employeeData.Timezone)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("employee %s: %w", employeeData.ID, err)
	}

	tokenResponse := auth.TokenResponse{
		EmployeeID: employeeData.ID,
		Role:       string(employeeData.Role),
		Timezone:   employeeData.Timezone,
	}
	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(employeeData.ID, employeeData.Role, employeeData.Timezone)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	shiftHours := a.defaultShiftHours
	if employeeData.ShiftDuration != nil {
		shiftHours = *employeeData.ShiftDuration
	}

	entry, _, err := a.shiftService.RecordLogin(ctx, shift.RecordLoginRequest{
		EmployeeID:        employeeData.ID,
		LoginDate:         clock.DateOf(now),
		LoginTime:         now,
		DefaultShiftHours: shiftHours,
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	dailyLog := shift.NewDailyLogResponse(entry)
	tokenResponse.DailyLog = &dailyLog

	return tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, req auth.LogoutRequest) error {
	now, err := a.clock.LocalNow(req.Timezone)
	if err != nil {
		return err
	}

	if err := a.shiftService.RecordLogout(ctx, req.EmployeeID, req.Timezone, now); err != nil {
		return err
	}

	a.Service.RevokeToken(req.Token, req.ExpiresAt)
	return nil
}
