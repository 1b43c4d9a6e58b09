package timezone_test

import (
	"testing"
	"time"

	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useZone(t *testing.T, name string) {
	t.Helper()

	previous := timezone.GetLocation()
	require.NoError(t, timezone.Set(name))

	t.Cleanup(func() { require.NoError(t, timezone.Set(previous.String())) })
}

func TestSet(t *testing.T) {
	useZone(t, "Asia/Muscat")

	assert.Equal(t, "Asia/Muscat", timezone.GetLocation().String())
	assert.Error(t, timezone.Set("Mars/Olympus_Mons"))
	assert.Equal(t, "Asia/Muscat", timezone.GetLocation().String(), "unknown zones keep the current one")
}

func TestParseAndFormat(t *testing.T) {
	useZone(t, "Asia/Muscat")

	parsed, err := timezone.Parse("2006-01-02", "2025-07-01")
	require.NoError(t, err)

	// Muscat is UTC+4, so local midnight is 20:00 UTC the day before.
	assert.Equal(t, time.Date(2025, 6, 30, 20, 0, 0, 0, time.UTC), parsed.UTC())
	assert.Equal(t, "2025-07-01 00:00", timezone.Format(parsed.UTC(), "2006-01-02 15:04"))

	_, err = timezone.Parse("2006-01-02", "01/07/2025")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	useZone(t, "Asia/Muscat")

	// 22:30 UTC on June 30 is already July 1 in Muscat.
	start := timezone.StartOfDay(time.Date(2025, 6, 30, 22, 30, 0, 0, time.UTC))

	assert.Equal(t, 1, start.Day())
	assert.Equal(t, time.July, start.Month())
	assert.Equal(t, 0, start.Hour())
	assert.True(t, timezone.Today().Equal(timezone.StartOfDay(timezone.Now())))
}

func TestCalendarDate(t *testing.T) {
	muscat, err := time.LoadLocation("Asia/Muscat")
	require.NoError(t, err)

	// The date is read in the value's own zone, not converted first.
	got := timezone.CalendarDate(time.Date(2025, 7, 1, 2, 15, 0, 0, muscat))

	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, 24*time.Hour, timezone.CalendarDate(time.Date(2025, 7, 2, 23, 59, 0, 0, time.UTC)).Sub(got))
}
