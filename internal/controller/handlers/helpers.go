package handlers

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common/formatting"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
)

// formatShifts lists upcoming shifts with a total of planned hours.
func formatShifts(shifts []model.Shift) string {
	if len(shifts) == 0 {
		return "🗓 Du har inga kommande pass. Hitta ett via /venues"
	}

	var sb strings.Builder
	sb.WriteString("🗓 <b>Mina pass</b>\n")
	var total float64
	for _, s := range shifts {
		fmt.Fprintf(&sb, "\n• %s %s", formatting.FormatShortDate(s.Date), formatting.FormatTimeRange(s.StartTime, s.EndTime))
		if s.VenueName != "" {
			fmt.Fprintf(&sb, " · %s", html.EscapeString(s.VenueName))
		}
		total += s.Hours()
	}
	fmt.Fprintf(&sb, "\n\nTotalt %s planerat.", formatting.FormatHours(total))
	return sb.String()
}

// formatChildren lists a parent's registered children.
func formatChildren(children []model.Child, year int) string {
	if len(children) == 0 {
		return "👨‍👩‍👧 Du har inga registrerade barn. Lägg till dem på webbplatsen."
	}

	var sb strings.Builder
	sb.WriteString("👨‍👩‍👧 <b>Mina barn</b>\n")
	for _, c := range children {
		fmt.Fprintf(&sb, "\n👧 %s", html.EscapeString(c.FirstName))
		if c.SchoolGrade > 0 {
			fmt.Fprintf(&sb, ", årskurs %d", c.SchoolGrade)
		}
		if c.BirthYear > 0 && c.BirthYear <= year {
			fmt.Fprintf(&sb, " (%d år)", year-c.BirthYear)
		}
	}
	return sb.String()
}

// parseHoursRange reads the optional "from to" arguments of /hours. Missing
// dates come back zero and are defaulted by the service.
func parseHoursRange(text string) (from, to calendar.Date, err error) {
	fields := strings.Fields(text)
	if len(fields) > 0 && strings.HasPrefix(fields[0], "/") {
		fields = fields[1:]
	}
	if len(fields) > 2 {
		return from, to, fmt.Errorf("want at most two dates, got %d", len(fields))
	}
	if len(fields) >= 1 {
		if from, err = calendar.ParseDate(fields[0]); err != nil {
			return from, to, err
		}
	}
	if len(fields) == 2 {
		if to, err = calendar.ParseDate(fields[1]); err != nil {
			return from, to, err
		}
	}
	return from, to, nil
}

func hoursFilename(from, to calendar.Date, now time.Time) string {
	if to.IsZero() {
		to = calendar.DateOf(now)
	}
	if from.IsZero() {
		from = calendar.NewDate(to.Year, time.January, 1)
	}
	return fmt.Sprintf("timmar_%s_%s.pdf", from, to)
}
