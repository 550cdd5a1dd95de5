package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/salesverse/salesverse-backend-go/internal/domain/metric"
	"github.com/salesverse/salesverse-backend-go/internal/handler/http/middleware"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/sse"
)

type StreamHandler interface {
	Metrics(w http.ResponseWriter, r *http.Request)
}

type streamHandlerImpl struct {
	hub       *sse.Hub
	keepalive time.Duration
}

// Metrics streams metrics_updated events for the leaderboard and the
// caller's own daily logs. Browsers pass the token as ?jwt= since
// EventSource cannot set headers.
func (h *streamHandlerImpl) Metrics(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustSession(r)
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(metric.LeaderboardTopic, metric.EmployeeTopic(session.EmployeeID))
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"employee_id\":%q}\n\n", session.EmployeeID)
	if err := rc.Flush(); err != nil {
		slog.Error("Metrics stream flush unsupported", "error", err)
		return
	}

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Metrics stream marshal error", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			rc.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			rc.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func NewStreamHandler(hub *sse.Hub) StreamHandler {
	return &streamHandlerImpl{
		hub:       hub,
		keepalive: 30 * time.Second,
	}
}
