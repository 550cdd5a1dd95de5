package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/salesverse/salesverse-backend-go/internal/domain/employee"
	"github.com/salesverse/salesverse-backend-go/internal/domain/metric"
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/clock"
)

const (
	leaderboardLimit = 5
	historyLimit     = 10
	chartLimit       = 9
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
	employees     employee.EmployeeRepository
	metricService metric.MetricService
	clock         clock.Clock
}

// RecordLogin implements shift.ShiftService.
func (s *ShiftServiceImpl) RecordLogin(ctx context.Context, req shift.RecordLoginRequest) (shift.ShiftEntry, bool, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftEntry{}, false, err
	}

	entry, created, err := s.ShiftRepository.CreateIfAbsent(ctx, shift.ShiftEntry{
		EmployeeID:         req.EmployeeID,
		LoginDate:          clock.DateOf(req.LoginDate),
		LoginTime:          req.LoginTime,
		ShiftDurationHours: req.DefaultShiftHours,
	})
	if err != nil {
		return shift.ShiftEntry{}, false, fmt.Errorf("failed to record login: %w", err)
	}
	return entry, created, nil
}

// RecordLogout implements shift.ShiftService.
func (s *ShiftServiceImpl) RecordLogout(ctx context.Context, employeeID string, timezone string, logoutAt time.Time) error {
	loc, err := clock.LoadLocation(timezone)
	if err != nil {
		return err
	}
	day := clock.DateOf(logoutAt.In(loc))

	if err := s.ShiftRepository.SetLogout(ctx, employeeID, day, logoutAt); err != nil {
		if errors.Is(err, shift.ErrShiftEntryNotFound) {
			slog.Warn("logout without a daily log",
				"employee_id", employeeID,
				"login_date", clock.FormatDate(day),
			)
			return nil
		}
		return fmt.Errorf("failed to record logout: %w", err)
	}
	return nil
}

// GetShiftState implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShiftState(ctx context.Context, employeeID string, loginDate time.Time) (shift.ShiftState, error) {
	entry, err := s.ShiftRepository.GetByEmployeeAndDate(ctx, employeeID, clock.DateOf(loginDate))
	if err != nil {
		return shift.ShiftState{}, err
	}
	return entry.State(), nil
}

// SetShiftDuration implements shift.ShiftService.
func (s *ShiftServiceImpl) SetShiftDuration(ctx context.Context, req shift.SetShiftDurationRequest) (shift.SetShiftDurationResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.SetShiftDurationResponse{}, err
	}

	target := req.EmployeeID
	if target == "" {
		target = req.ActorID
	}
	if target != req.ActorID && employee.Role(req.ActorRole) != employee.RoleManager {
		return shift.SetShiftDurationResponse{}, shift.ErrForbidden
	}

	// days and the live window follow the target's zone, not the actor's
	timezone := req.Timezone
	if target != req.ActorID {
		emp, err := s.employees.GetByID(ctx, target)
		if err != nil {
			return shift.SetShiftDurationResponse{}, err
		}
		if emp.Timezone != "" {
			timezone = emp.Timezone
		}
	}

	day, err := s.resolveDate(timezone, req.Date)
	if err != nil {
		return shift.SetShiftDurationResponse{}, err
	}
	localToday, err := s.clock.LocalToday(timezone)
	if err != nil {
		return shift.SetShiftDurationResponse{}, err
	}
	live := day.Equal(localToday)

	hours, err := s.ShiftRepository.UpdateShiftDuration(ctx, target, day, req.Hours)
	if err != nil {
		if errors.Is(err, shift.ErrShiftEntryNotFound) || errors.Is(err, shift.ErrInvalidShiftDuration) {
			return shift.SetShiftDurationResponse{}, err
		}
		return shift.SetShiftDurationResponse{}, fmt.Errorf("failed to update shift duration: %w", err)
	}

	resp := shift.SetShiftDurationResponse{
		EmployeeID:         target,
		Date:               clock.FormatDate(day),
		ShiftDurationHours: hours,
	}

	var metrics shift.Metrics
	if live {
		metrics, err = s.metricService.RecomputeLive(ctx, target, day, timezone)
	} else {
		metrics, err = s.metricService.RecomputeHistorical(ctx, target, day)
	}
	if err != nil {
		warning := &metric.RecomputationWarning{EmployeeID: target, Day: day, Err: err}
		slog.Warn("metric recomputation failed after shift change",
			"employee_id", target,
			"entry_date", resp.Date,
			"live", live,
			"error", err,
		)
		resp.MetricsStale = true
		resp.Warning = warning.Error()
		return resp, nil
	}
	resp.Metrics = shift.NewMetricsResponse(metrics)
	return resp, nil
}

// GetToday implements shift.ShiftService.
func (s *ShiftServiceImpl) GetToday(ctx context.Context, employeeID string, timezone string) (shift.DailyLogResponse, error) {
	today, err := s.clock.LocalToday(timezone)
	if err != nil {
		return shift.DailyLogResponse{}, err
	}
	entry, err := s.ShiftRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return shift.DailyLogResponse{}, err
	}
	return shift.NewDailyLogResponse(entry), nil
}

// Leaderboard implements shift.ShiftService.
func (s *ShiftServiceImpl) Leaderboard(ctx context.Context, req shift.LeaderboardRequest) ([]shift.DailyLogResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	day, err := s.resolveDate(req.Timezone, req.Date)
	if err != nil {
		return nil, err
	}

	entries, err := s.ShiftRepository.Leaderboard(ctx, day, leaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return toDailyLogResponses(entries), nil
}

// History implements shift.ShiftService.
func (s *ShiftServiceImpl) History(ctx context.Context, req shift.HistoryRequest) ([]shift.DailyLogResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	until, err := s.resolveDate(req.Timezone, req.Until)
	if err != nil {
		return nil, err
	}

	entries, err := s.ShiftRepository.ListTopByEmployee(ctx, req.EmployeeID, until, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily log history: %w", err)
	}
	return toDailyLogResponses(entries), nil
}

// Chart implements shift.ShiftService.
func (s *ShiftServiceImpl) Chart(ctx context.Context, req shift.ChartRequest) ([]shift.ChartPointResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	before, err := s.resolveDate(req.Timezone, req.Before)
	if err != nil {
		return nil, err
	}

	points, err := s.ShiftRepository.ListChart(ctx, req.EmployeeID, before, chartLimit, req.WithMetricsOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get chart data: %w", err)
	}

	resp := make([]shift.ChartPointResponse, 0, len(points))
	for _, p := range points {
		resp = append(resp, shift.NewChartPointResponse(p))
	}
	return resp, nil
}

// resolveDate parses an explicit day or falls back to the local today in timezone.
func (s *ShiftServiceImpl) resolveDate(timezone string, date *string) (time.Time, error) {
	if date != nil && *date != "" {
		return clock.ParseDate(*date)
	}
	return s.clock.LocalToday(timezone)
}

func toDailyLogResponses(entries []shift.ShiftEntry) []shift.DailyLogResponse {
	resp := make([]shift.DailyLogResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, shift.NewDailyLogResponse(e))
	}
	return resp
}

func NewShiftService(
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	metricService metric.MetricService,
	clk clock.Clock,
) shift.ShiftService {
	return &ShiftServiceImpl{
		ShiftRepository: shiftRepo,
		employees:       employeeRepo,
		metricService:   metricService,
		clock:           clk,
	}
}
