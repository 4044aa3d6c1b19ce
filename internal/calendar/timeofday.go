package calendar

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time without date or zone.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay accepts "HH:MM:SS" (backend format) and "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("parse time of day %q", s)
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Hours returns fractional hours since midnight.
func (t TimeOfDay) Hours() float64 {
	return float64(t.Hour) + float64(t.Minute)/60 + float64(t.Second)/3600
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.seconds() < other.seconds()
}

func (t TimeOfDay) seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// String formats as "15:04".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Wire formats as "15:04:05".
func (t TimeOfDay) Wire() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}
