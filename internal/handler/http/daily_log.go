package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/salesverse/salesverse-backend-go/internal/domain/metric"
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/salesverse/salesverse-backend-go/internal/handler/http/middleware"
	"github.com/salesverse/salesverse-backend-go/internal/handler/http/response"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/clock"
)

type DailyLogHandler interface {
	Today(w http.ResponseWriter, r *http.Request)
	Leaderboard(w http.ResponseWriter, r *http.Request)
	MyChart(w http.ResponseWriter, r *http.Request)
	EmployeeHistory(w http.ResponseWriter, r *http.Request)
	EmployeeChart(w http.ResponseWriter, r *http.Request)
	SetShiftDuration(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
}

type DailyLogHandlerImpl struct {
	shiftService  shift.ShiftService
	metricService metric.MetricService
}

// Today implements DailyLogHandler.
func (h *DailyLogHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustSession(r)

	result, err := h.shiftService.GetToday(r.Context(), session.EmployeeID, session.Timezone)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Leaderboard implements DailyLogHandler.
func (h *DailyLogHandlerImpl) Leaderboard(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustSession(r)

	req := shift.LeaderboardRequest{
		Timezone: session.Timezone,
		Date:     optionalQuery(r, "date"),
	}
	result, err := h.shiftService.Leaderboard(r.Context(), req)
	if err != nil {
		slog.Error("Leaderboard service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessList(w, result)
}

// MyChart implements DailyLogHandler. Only days with computed metrics are plotted.
func (h *DailyLogHandlerImpl) MyChart(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustSession(r)
	h.chart(w, r, shift.ChartRequest{
		Timezone:        session.Timezone,
		EmployeeID:      session.EmployeeID,
		Before:          optionalQuery(r, "before"),
		WithMetricsOnly: true,
	})
}

// EmployeeChart implements DailyLogHandler.
func (h *DailyLogHandlerImpl) EmployeeChart(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustSession(r)
	h.chart(w, r, shift.ChartRequest{
		Timezone:   session.Timezone,
		EmployeeID: chi.URLParam(r, "employeeID"),
		Before:     optionalQuery(r, "before"),
	})
}

func (h *DailyLogHandlerImpl) chart(w http.ResponseWriter, r *http.Request, req shift.ChartRequest) {
	result, err := h.shiftService.Chart(r.Context(), req)
	if err != nil {
		slog.Error("Chart service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessList(w, result)
}

// EmployeeHistory implements DailyLogHandler.
func (h *DailyLogHandlerImpl) EmployeeHistory(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustSession(r)

	req := shift.HistoryRequest{
		Timezone:   session.Timezone,
		EmployeeID: chi.URLParam(r, "employeeID"),
		Until:      optionalQuery(r, "until"),
	}
	result, err := h.shiftService.History(r.Context(), req)
	if err != nil {
		slog.Error("History service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessList(w, result)
}

// SetShiftDuration implements DailyLogHandler.
func (h *DailyLogHandlerImpl) SetShiftDuration(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustSession(r)

	var req shift.SetShiftDurationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetShiftDuration decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ActorID = session.EmployeeID
	req.ActorRole = string(session.Role)
	req.Timezone = session.Timezone

	result, err := h.shiftService.SetShiftDuration(r.Context(), req)
	if err != nil {
		slog.Error("SetShiftDuration service error", "error", err)
		response.HandleError(w, err)
		return
	}

	message := "Shift duration updated"
	if result.MetricsStale {
		message = result.Warning
	}
	response.SuccessWithMessage(w, message, result)
}

// Recompute implements DailyLogHandler.
func (h *DailyLogHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	req := metric.RecomputeRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Date:       chi.URLParam(r, "date"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	day, err := clock.ParseDate(req.Date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	metrics, err := h.metricService.RecomputeHistorical(r.Context(), req.EmployeeID, day)
	if err != nil {
		slog.Error("Recompute service error", "employee_id", req.EmployeeID, "entry_date", req.Date, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Metrics recomputed", metric.RecomputeResponse{
		EmployeeID:      req.EmployeeID,
		Date:            req.Date,
		MetricsResponse: *shift.NewMetricsResponse(metrics),
	})
}

func optionalQuery(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func NewDailyLogHandler(shiftService shift.ShiftService, metricService metric.MetricService) DailyLogHandler {
	return &DailyLogHandlerImpl{
		shiftService:  shiftService,
		metricService: metricService,
	}
}
