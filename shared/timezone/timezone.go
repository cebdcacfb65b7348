package timezone

import (
	"fmt"
	"rentro/config"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"
)

const (
	defaultTimezone = "Asia/Ho_Chi_Minh"
	defaultOffset   = "+07:00"
)

var (
	appLocation    *time.Location
	offsetLocation *time.Location
)

func init() {
	cfg := config.Get()

	initOffset(cfg.Booking.UTCOffset)

	if cfg.App.Timezone == "" {
		log.Warn().Str("timezone", defaultTimezone).Msg("No timezone configured, using default")
		cfg.App.Timezone = defaultTimezone
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Jakarta', 'UTC', 'America/New_York'")
		appLocation = time.UTC
		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", cfg.App.Timezone).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone
func Now() time.Time {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, using UTC")
		return time.Now().UTC()
	}
	return time.Now().In(appLocation)
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, using UTC")
		return t.UTC()
	}
	return t.In(appLocation)
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, returning UTC")
		return time.UTC
	}
	return appLocation
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// StartOfDay truncates t to midnight of its calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()

	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// ParseOffset turns a literal offset such as "+07:00" into a fixed zone.
func ParseOffset(offset string) (*time.Location, error) {
	ref, err := time.Parse("-07:00", offset)
	if err != nil {
		return nil, fmt.Errorf("invalid utc offset %q: %w", offset, err)
	}

	_, seconds := ref.Zone()

	return time.FixedZone("UTC"+offset, seconds), nil
}

func initOffset(offset string) {
	if offset == "" {
		offset = defaultOffset
	}

	loc, err := ParseOffset(offset)
	if err != nil {
		log.Error().Err(err).Str("offset", offset).Msg("Invalid booking offset, using " + defaultOffset)
		loc, _ = ParseOffset(defaultOffset)
	}

	offsetLocation = loc
}

// OffsetLocation is the fixed zone booking timestamps are written in (BOOKING_UTC_OFFSET).
func OffsetLocation() *time.Location {
	return offsetLocation
}

// FormatOffset formats t in the booking offset, so "+07:00" appears on the wire whatever
// APP_TIMEZONE is.
func FormatOffset(t time.Time, layout string) string {
	return t.In(offsetLocation).Format(layout)
}
