package formatting

import (
	"fmt"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
)

var monthNames = [...]string{
	"januari", "februari", "mars", "april", "maj", "juni",
	"juli", "augusti", "september", "oktober", "november", "december",
}

func MonthName(m time.Month) string {
	return monthNames[m-1]
}

// FormatDate renders "måndag 16 mars".
func FormatDate(d calendar.Date) string {
	return fmt.Sprintf("%s %d %s", lower(d.Weekday().Swedish()), d.Day, MonthName(d.Month))
}

// FormatShortDate renders "Mån 16/3".
func FormatShortDate(d calendar.Date) string {
	return fmt.Sprintf("%s %d/%d", d.Weekday().SwedishShort(), d.Day, int(d.Month))
}

func FormatTimeRange(start, end calendar.TimeOfDay) string {
	return start.String() + "–" + end.String()
}

// FormatDateTime renders an instant as "16/3 13:00".
func FormatDateTime(t time.Time) string {
	return fmt.Sprintf("%d/%d %s", t.Day(), int(t.Month()), t.Format("15:04"))
}

// FormatWeek renders "v. 12, 16–22 mars".
func FormatWeek(days [7]calendar.Date) string {
	first, last := days[0], days[6]
	_, week := first.In(time.UTC).ISOWeek()
	if first.Month == last.Month {
		return fmt.Sprintf("v. %d, %d–%d %s", week, first.Day, last.Day, MonthName(last.Month))
	}
	return fmt.Sprintf("v. %d, %d %s–%d %s", week, first.Day, MonthName(first.Month), last.Day, MonthName(last.Month))
}

func FormatHours(h float64) string {
	if h == float64(int(h)) {
		return fmt.Sprintf("%d h", int(h))
	}
	return fmt.Sprintf("%.1f h", h)
}

func lower(s string) string {
	r := []rune(s)
	if len(r) > 0 && r[0] >= 'A' && r[0] <= 'Z' {
		r[0] += 'a' - 'A'
	}
	return string(r)
}
