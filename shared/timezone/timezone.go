// Package timezone pins "now" and date parsing to the hotel's own timezone, taken from the
// TIMEZONE setting as an IANA name such as "Asia/Muscat". An empty or unknown name falls back
// to UTC. Stay dates are calendar dates in this zone, so "today" is the hotel's today.
package timezone

import (
	"time"

	"hotel/config"

	"github.com/rs/zerolog/log"
)

var appLocation = time.UTC

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return
	}

	if err := Set(name); err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		return
	}

	log.Info().Str("timezone", name).Msg("Application timezone loaded")
}

// Set switches the application timezone. The previous zone is kept when name is unknown.
func Set(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err //nolint:wrapcheck
	}

	appLocation = loc

	return nil
}

func GetLocation() *time.Location {
	return appLocation
}

func Now() time.Time {
	return time.Now().In(appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

// Parse reads value as a wall-clock time in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// StartOfDay truncates t to midnight of its calendar date in the application timezone.
func StartOfDay(t time.Time) time.Time {
	local := ToAppTime(t)
	year, month, day := local.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, appLocation)
}

// CalendarDate keeps only the date of t, as UTC midnight, so differences between two
// calendar dates are whole days regardless of DST.
func CalendarDate(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Today is midnight of the current date in the application timezone.
func Today() time.Time {
	return StartOfDay(Now())
}
