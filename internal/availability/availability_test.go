package availability

import (
	"testing"

	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func slot(maxCap, booked int) *model.TimeSlot {
	return &model.TimeSlot{MaxCapacity: maxCap, CurrentBookings: booked, Status: model.SlotStatusOpen}
}

func TestRemainingCapacity(t *testing.T) {
	assert.Equal(t, 1, RemainingCapacity(slot(10, 9)))
	assert.Equal(t, 10, RemainingCapacity(slot(10, 0)))
	assert.Equal(t, 0, RemainingCapacity(slot(10, 10)))
	// Stale or inconsistent snapshots never go negative.
	assert.Equal(t, 0, RemainingCapacity(slot(10, 12)))
}

func TestTierOf(t *testing.T) {
	cases := []struct {
		maxCap, booked int
		want           Tier
	}{
		{10, 9, TierFull},    // 0.1
		{10, 8, TierFull},    // 0.2 is not above the limited threshold
		{10, 7, TierLimited}, // 0.3
		{10, 5, TierLimited}, // 0.5 is not above the ample threshold
		{10, 4, TierAmple},   // 0.6
		{10, 0, TierAmple},
		{10, 10, TierFull},
		{10, 11, TierFull},
		{0, 0, TierFull},
		{1, 0, TierAmple},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TierOf(slot(tc.maxCap, tc.booked)), "%d/%d", tc.booked, tc.maxCap)
	}
}

func TestTierOf_FullWheneverNothingRemains(t *testing.T) {
	for maxCap := 1; maxCap <= 50; maxCap++ {
		s := slot(maxCap, maxCap)
		assert.Equal(t, 0, RemainingCapacity(s))
		assert.Equal(t, TierFull, TierOf(s))
	}
}

func TestSummarize(t *testing.T) {
	s := slot(10, 2)
	sum := Summarize(s)
	assert.Equal(t, Summary{Remaining: 8, Capacity: 10, Tier: TierAmple}, sum)
	assert.True(t, sum.Bookable())

	s.Status = model.SlotStatusCancelled
	sum = Summarize(s)
	assert.True(t, sum.Cancelled)
	assert.False(t, sum.Bookable())

	assert.False(t, Summarize(slot(10, 10)).Bookable())
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "ample", TierAmple.String())
	assert.Equal(t, "limited", TierLimited.String())
	assert.Equal(t, "full", TierFull.String())
}
