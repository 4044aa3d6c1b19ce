// Package availability derives seat counts and a display tier from a slot snapshot.
package availability

import "github.com/pluggkompis/pluggkompis_bot/internal/model"

type Tier int

const (
	TierFull Tier = iota
	TierLimited
	TierAmple
)

func (t Tier) String() string {
	switch t {
	case TierAmple:
		return "ample"
	case TierLimited:
		return "limited"
	default:
		return "full"
	}
}

const (
	ampleAbove   = 0.5
	limitedAbove = 0.2
)

// RemainingCapacity is maxCapacity - currentBookings, never below zero.
func RemainingCapacity(slot *model.TimeSlot) int {
	remaining := slot.MaxCapacity - slot.CurrentBookings
	if remaining < 0 {
		return 0
	}
	return remaining
}

// TierOf classifies the remaining share of seats: above 0.5 is Ample, above
// 0.2 is Limited, anything else is Full. A slot without capacity is Full.
func TierOf(slot *model.TimeSlot) Tier {
	remaining := RemainingCapacity(slot)
	if remaining <= 0 || slot.MaxCapacity <= 0 {
		return TierFull
	}

	ratio := float64(remaining) / float64(slot.MaxCapacity)
	switch {
	case ratio > ampleAbove:
		return TierAmple
	case ratio > limitedAbove:
		return TierLimited
	default:
		return TierFull
	}
}

// Summary is what the UI shows next to a slot.
type Summary struct {
	Remaining int
	Capacity  int
	Tier      Tier
	Cancelled bool
}

// Summarize bundles the capacity figures with the backend's cancellation flag.
func Summarize(slot *model.TimeSlot) Summary {
	return Summary{
		Remaining: RemainingCapacity(slot),
		Capacity:  slot.MaxCapacity,
		Tier:      TierOf(slot),
		Cancelled: slot.IsCancelled(),
	}
}

// Bookable reports whether the UI should offer a booking action. The backend
// still decides; a seat shown here can be gone by the time the request lands.
func (s Summary) Bookable() bool {
	return !s.Cancelled && s.Remaining > 0
}
