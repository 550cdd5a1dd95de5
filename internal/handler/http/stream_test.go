package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/salesverse/salesverse-backend-go/internal/domain/employee"
	"github.com/salesverse/salesverse-backend-go/internal/domain/metric"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readEvent returns the name and data of the next server-sent event.
func readEvent(t *testing.T, reader *bufio.Reader) (string, string) {
	t.Helper()
	var name, data string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			return name, data
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestMetricsStream(t *testing.T) {
	s := newTestServer(t, "100-M")
	s.addEmployee(t, "ana@example.com", employee.RoleSalesAssociate)
	token := s.login(t, "ana@example.com")

	srv := httptest.NewServer(s.router)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events/metrics?jwt="+token.AccessToken, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	name, data := readEvent(t, reader)
	assert.Equal(t, "connected", name)
	assert.Contains(t, data, token.EmployeeID)

	rec, _ := s.do(t, http.MethodPost, "/api/v1/sales", token.AccessToken, closedSale(s.campaign, "20"))
	require.Equal(t, http.StatusCreated, rec.Code)

	name, data = readEvent(t, reader)
	require.Equal(t, metric.EventMetricsUpdated, name)
	var payload metric.MetricsUpdatedEvent
	require.NoError(t, json.Unmarshal([]byte(data), &payload))
	assert.Equal(t, token.EmployeeID, payload.EmployeeID)
	assert.Equal(t, testToday, payload.Date)
	assert.True(t, payload.Live)
	assert.True(t, payload.Commission.Equal(decimal.NewFromInt(20)))
}

func TestMetricsStream_RequiresToken(t *testing.T) {
	s := newTestServer(t, "100-M")

	rec, _ := s.do(t, http.MethodGet, "/api/v1/events/metrics", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
