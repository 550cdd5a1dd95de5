package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalToday_CrossesMidnightByZone(t *testing.T) {
	// 2025-03-10 02:30 UTC is still March 9 in Toronto and already March 10 in Tokyo.
	c := NewFixed(time.Date(2025, 3, 10, 2, 30, 0, 0, time.UTC))

	toronto, err := c.LocalToday("America/Toronto")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09", FormatDate(toronto))

	tokyo, err := c.LocalToday("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", FormatDate(tokyo))
	assert.Equal(t, time.UTC, tokyo.Location())
}

func TestLocalNow_KeepsInstant(t *testing.T) {
	instant := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := NewFixed(instant)

	now, err := c.LocalNow("Asia/Kolkata")
	require.NoError(t, err)
	assert.True(t, now.Equal(instant))
	assert.Equal(t, 17, now.Hour())
	assert.Equal(t, 30, now.Minute())
}

func TestLocalNow_InvalidTimezone(t *testing.T) {
	c := New()

	_, err := c.LocalNow("")
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = c.LocalToday("Not/AZone")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(d))

	_, err = ParseDate("2024-02-30")
	assert.Error(t, err)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, a.AddDate(0, 0, 1)))
}
