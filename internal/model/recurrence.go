package model

import "github.com/pluggkompis/pluggkompis_bot/internal/calendar"

// WeeklyRule repeats a slot every week on one weekday.
// A zero EffectiveFrom means the rule has no lower bound; a nil EffectiveUntil
// means it never ends.
type WeeklyRule struct {
	DayOfWeek      calendar.Weekday `json:"day_of_week"`
	EffectiveFrom  calendar.Date    `json:"effective_from"`
	EffectiveUntil *calendar.Date   `json:"effective_until,omitempty"`
}

// Recurrence holds exactly one of Weekly or OneOff.
type Recurrence struct {
	Weekly *WeeklyRule    `json:"weekly,omitempty"`
	OneOff *calendar.Date `json:"one_off,omitempty"`
}

// Weekly builds a recurring variant.
func Weekly(day calendar.Weekday, from calendar.Date, until *calendar.Date) Recurrence {
	return Recurrence{Weekly: &WeeklyRule{DayOfWeek: day, EffectiveFrom: from, EffectiveUntil: until}}
}

// OneOff builds a single-date variant.
func OneOff(date calendar.Date) Recurrence {
	return Recurrence{OneOff: &date}
}

// IsRecurring reports whether the weekly variant is populated.
func (r Recurrence) IsRecurring() bool {
	return r.Weekly != nil
}
