package metric

import (
	"context"
	"time"

	"github.com/salesverse/salesverse-backend-go/internal/domain/metric"
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/clock"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/sse"
)

// PublishingMetricService announces every successful recomputation on the
// hub. Repair passes run through the wrapped service and stay silent.
type PublishingMetricService struct {
	metric.MetricService
	hub *sse.Hub
}

// RecomputeLive implements metric.MetricService.
func (s *PublishingMetricService) RecomputeLive(ctx context.Context, employeeID string, day time.Time, timezone string) (shift.Metrics, error) {
	m, err := s.MetricService.RecomputeLive(ctx, employeeID, day, timezone)
	if err != nil {
		return m, err
	}
	s.publish(employeeID, day, m, true)
	return m, nil
}

// RecomputeHistorical implements metric.MetricService.
func (s *PublishingMetricService) RecomputeHistorical(ctx context.Context, employeeID string, day time.Time) (shift.Metrics, error) {
	m, err := s.MetricService.RecomputeHistorical(ctx, employeeID, day)
	if err != nil {
		return m, err
	}
	s.publish(employeeID, day, m, false)
	return m, nil
}

func (s *PublishingMetricService) publish(employeeID string, day time.Time, m shift.Metrics, live bool) {
	event := sse.Event{
		Name: metric.EventMetricsUpdated,
		Data: metric.MetricsUpdatedEvent{
			EmployeeID:   employeeID,
			Date:         clock.FormatDate(day),
			SalesPerHour: m.SalesPerHour,
			Commission:   m.Commission,
			Live:         live,
		},
	}
	s.hub.Publish(event, metric.EmployeeTopic(employeeID), metric.LeaderboardTopic)
}

func NewPublishingMetricService(inner metric.MetricService, hub *sse.Hub) metric.MetricService {
	return &PublishingMetricService{
		MetricService: inner,
		hub:           hub,
	}
}
