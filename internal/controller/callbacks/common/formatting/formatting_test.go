package formatting

import (
	"testing"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/availability"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	d := calendar.NewDate(2026, time.March, 16)
	assert.Equal(t, "måndag 16 mars", FormatDate(d))
	assert.Equal(t, "Mån 16/3", FormatShortDate(d))
}

func TestFormatWeek(t *testing.T) {
	assert.Equal(t, "v. 12, 16–22 mars", FormatWeek(calendar.WeekOf(calendar.NewDate(2026, time.March, 18))))
	assert.Equal(t, "v. 14, 30 mars–5 april", FormatWeek(calendar.WeekOf(calendar.NewDate(2026, time.April, 1))))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 plats", Seats(1))
	assert.Equal(t, "0 platser", Seats(0))
	assert.Equal(t, "3 bokningar", Bookings(3))
	assert.Equal(t, "1.5 h", FormatHours(1.5))
	assert.Equal(t, "2 h", FormatHours(2))
}

func TestTier(t *testing.T) {
	assert.Equal(t, "🟢", Tier(availability.Summary{Tier: availability.TierAmple}).Emoji)
	assert.Equal(t, "⚫️", Tier(availability.Summary{Tier: availability.TierAmple, Cancelled: true}).Emoji)
}
