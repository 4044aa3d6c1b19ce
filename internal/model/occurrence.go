package model

import (
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
)

// Occurrence is one dated instance of a time slot. It is derived on demand
// and never stored.
type Occurrence struct {
	SlotID string
	Date   calendar.Date
	Start  time.Time
	End    time.Time
	Slot   *TimeSlot
}
