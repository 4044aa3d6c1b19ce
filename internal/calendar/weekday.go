package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is the single weekday enumeration used across the bot.
// Numbering follows ISO 8601: Monday = 1 ... Sunday = 7, so Monday is always first.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Weekdays lists the days in week order.
var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

var swedishNames = map[Weekday]string{
	Monday:    "Måndag",
	Tuesday:   "Tisdag",
	Wednesday: "Onsdag",
	Thursday:  "Torsdag",
	Friday:    "Fredag",
	Saturday:  "Lördag",
	Sunday:    "Söndag",
}

var swedishShort = map[Weekday]string{
	Monday:    "Mån",
	Tuesday:   "Tis",
	Wednesday: "Ons",
	Thursday:  "Tor",
	Friday:    "Fre",
	Saturday:  "Lör",
	Sunday:    "Sön",
}

// lookup accepts the backend's English names and the Swedish names, case-insensitive.
var lookup = func() map[string]Weekday {
	m := make(map[string]Weekday, 28)
	for d, name := range weekdayNames {
		m[strings.ToLower(name)] = d
		m[strings.ToLower(name[:3])] = d
	}
	for d, name := range swedishNames {
		m[strings.ToLower(name)] = d
		m[strings.ToLower(swedishShort[d])] = d
	}
	return m
}()

// ParseWeekday parses a weekday name such as "Monday", "monday", "Mon" or
// "Måndag", or the backend's numeric form where 0 is Sunday and 6 Saturday.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("weekday number %d out of range", n)
		}
		return WeekdayOf(time.Weekday(n)), nil
	}
	d, ok := lookup[s]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return d, nil
}

// WeekdayOf converts a time.Weekday (Sunday = 0) to the ISO numbering.
func WeekdayOf(wd time.Weekday) Weekday {
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// Valid reports whether d is one of the seven days.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// Std converts back to time.Weekday.
func (d Weekday) Std() time.Weekday {
	return time.Weekday(int(d) % 7)
}

// Index is the zero-based position in a Monday-first week.
func (d Weekday) Index() int {
	return int(d) - 1
}

func (d Weekday) String() string {
	if name, ok := weekdayNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Weekday(%d)", int(d))
}

// Swedish returns the full Swedish name, e.g. "Måndag".
func (d Weekday) Swedish() string {
	if name, ok := swedishNames[d]; ok {
		return name
	}
	return "?"
}

// SwedishShort returns the abbreviated Swedish name, e.g. "Mån".
func (d Weekday) SwedishShort() string {
	if name, ok := swedishShort[d]; ok {
		return name
	}
	return "?"
}
