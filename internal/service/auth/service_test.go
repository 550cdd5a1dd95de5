package auth

import (
	"context"
	"testing"
	"time"

	"github.com/salesverse/salesverse-backend-go/internal/domain/auth"
	"github.com/salesverse/salesverse-backend-go/internal/domain/employee"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/clock"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/jwt"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/validator"
	"github.com/salesverse/salesverse-backend-go/internal/repository/memory"
	metricService "github.com/salesverse/salesverse-backend-go/internal/service/metric"
	shiftService "github.com/salesverse/salesverse-backend-go/internal/service/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

// 23:30 in Toronto on 2025-03-09, already 2025-03-10 in UTC.
var testNow = time.Date(2025, 3, 10, 3, 30, 0, 0, time.UTC)

type authFixture struct {
	store   *memory.Store
	jwt     jwt.Service
	service auth.AuthService
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	store := memory.NewStore()
	clk := clock.NewFixed(testNow)
	metrics := metricService.NewMetricService(store, store.Shifts(), store.Sales(), clk)
	shifts := shiftService.NewShiftService(store.Shifts(), store.Employees(), metrics, clk)
	jwtService := jwt.NewJWTService(testSecret, testAccessExp)
	return authFixture{
		store:   store,
		jwt:     jwtService,
		service: NewAuthService(store.Employees(), jwtService, shifts, clk, 8),
	}
}

func createAuthTestEmployee(t *testing.T, store *memory.Store, email string, shiftHours *float64) employee.Employee {
	t.Helper()
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	return store.AddEmployee(employee.Employee{
		FirstName:     "Ana",
		Email:         email,
		PasswordHash:  string(hashedPassword),
		Role:          employee.RoleSalesAssociate,
		Timezone:      "America/Toronto",
		ShiftDuration: shiftHours,
	})
}

// Test Login with valid credentials
func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	emp := createAuthTestEmployee(t, f.store, "login@example.com", nil)

	response, err := f.service.Login(ctx, auth.LoginRequest{Email: "login@example.com", Password: "password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.Greater(t, response.AccessTokenExpiresIn, int64(0))
	assert.Equal(t, emp.ID, response.EmployeeID)
	assert.Equal(t, "America/Toronto", response.Timezone)
	require.NotNil(t, response.DailyLog)
	// the local day, not the UTC day
	assert.Equal(t, "2025-03-09", response.DailyLog.LoginDate)
	assert.Equal(t, 8.0, response.DailyLog.ShiftDurationHours)
}

// Test Login twice keeps the first login time
func TestAuthService_Login_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	hours := 6.0
	createAuthTestEmployee(t, f.store, "twice@example.com", &hours)

	first, err := f.service.Login(ctx, auth.LoginRequest{Email: "twice@example.com", Password: "password123"})
	require.NoError(t, err)
	second, err := f.service.Login(ctx, auth.LoginRequest{Email: "twice@example.com", Password: "password123"})
	require.NoError(t, err)

	assert.Equal(t, first.DailyLog.ID, second.DailyLog.ID)
	assert.Equal(t, first.DailyLog.LoginTime, second.DailyLog.LoginTime)
	assert.Equal(t, 6.0, second.DailyLog.ShiftDurationHours)
}

// Test Login with invalid password
func TestAuthService_Login_InvalidPassword(t *testing.T) {
	f := newAuthFixture(t)
	createAuthTestEmployee(t, f.store, "wrong@example.com", nil)

	_, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "wrong@example.com", Password: "nope-nope"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

// Test Login with unknown email
func TestAuthService_Login_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

// Test Login with missing fields
func TestAuthService_Login_Validation(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), auth.LoginRequest{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "email")
	assert.Contains(t, verrs.ToMap(), "password")
}

// Test Logout stamps the daily log and revokes the token
func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	emp := createAuthTestEmployee(t, f.store, "bye@example.com", nil)

	resp, err := f.service.Login(ctx, auth.LoginRequest{Email: "bye@example.com", Password: "password123"})
	require.NoError(t, err)

	err = f.service.Logout(ctx, auth.LogoutRequest{
		Token:      resp.AccessToken,
		ExpiresAt:  resp.AccessTokenExpiresIn,
		EmployeeID: emp.ID,
		Timezone:   resp.Timezone,
	})
	require.NoError(t, err)
	assert.True(t, f.jwt.IsTokenRevoked(resp.AccessToken))

	day, _ := clock.ParseDate("2025-03-09")
	entry, err := f.store.Shifts().GetByEmployeeAndDate(ctx, emp.ID, day)
	require.NoError(t, err)
	require.NotNil(t, entry.LogoutTime)
	assert.True(t, entry.LogoutTime.Equal(testNow))
}
