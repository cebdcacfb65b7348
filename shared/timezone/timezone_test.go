package timezone_test

import (
	"rentro/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowUsesAppLocation(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestFormat(t *testing.T) {
	formatted := timezone.Format(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), time.RFC3339)

	parsed, err := time.Parse(time.RFC3339, formatted)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func TestFormatOffset(t *testing.T) {
	// 07:30 UTC is written with the booking offset, not APP_TIMEZONE.
	instant := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-10T14:30:00+07:00", timezone.FormatOffset(instant, time.RFC3339))

	_, seconds := instant.In(timezone.OffsetLocation()).Zone()
	assert.Equal(t, 7*3600, seconds)
}

func TestStartOfDay(t *testing.T) {
	loc, err := timezone.ParseOffset("+07:00")
	require.NoError(t, err)

	// 20:00 UTC on the 9th is already the 10th at +07:00.
	instant := time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, loc), timezone.StartOfDay(instant, loc))
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		offset  string
		seconds int
		wantErr bool
	}{
		{offset: "+07:00", seconds: 7 * 3600},
		{offset: "-03:30", seconds: -(3*3600 + 30*60)},
		{offset: "+00:00", seconds: 0},
		{offset: "GMT+7", wantErr: true},
		{offset: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.offset, func(t *testing.T) {
			loc, err := timezone.ParseOffset(tt.offset)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)

			_, seconds := time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Zone()
			assert.Equal(t, tt.seconds, seconds)
		})
	}
}
