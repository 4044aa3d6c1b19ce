package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
)

// Callback data prefixes. Telegram limits callback data to 64 bytes, so ids
// are packed with a short prefix and dates as yyyymmdd.
const (
	Noop        = "noop"
	MainMenu    = "main"
	VenueList   = "vl"
	VenuePage   = "vp:"  // vp:<page>
	VenueSelect = "v:"   // v:<venue>
	WeekNav     = "wk:"  // wk:<venue>:<yyyymmdd>
	Occurrence  = "oc:"  // oc:<slot>:<yyyymmdd>
	BookStart   = "bks:" // bks:<slot>:<yyyymmdd>
	BookNext    = "bkn:" // bkn:<slot>
	BookChild   = "bch:" // bch:<child>
	BookConfirm = "bok"
	BookAbort   = "bab"

	MyBookings    = "mb"
	CancelBooking = "bcx:" // bcx:<booking>
	ConfirmCancel = "bcy:" // bcy:<booking>

	ApplyVenue  = "vap:" // vap:<venue>
	ShiftSignUp = "shf:" // shf:<slot>:<yyyymmdd>

	Applications     = "apl:" // apl:<venue>
	ApproveApp       = "apy:" // apy:<application>
	DeclineApp       = "apn:" // apn:<application>
	AttendanceList   = "atl:" // atl:<slot>:<yyyymmdd>
	AttendanceToggle = "att:" // att:<booking>:<0|1>
)

const compactDate = "20060102"

// FormatDate packs a date for callback data.
func FormatDate(d calendar.Date) string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

// ParseDate unpacks a date written by FormatDate.
func ParseDate(s string) (calendar.Date, error) {
	t, err := time.Parse(compactDate, s)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("%w: date %q", ErrInvalidFormat, s)
	}
	return calendar.DateOf(t), nil
}

// Data builds callback data from a prefix and its arguments.
func Data(prefix string, args ...string) string {
	return prefix + strings.Join(args, ":")
}

// Args splits callback data after prefix into exactly n parts.
func Args(data, prefix string, n int) ([]string, error) {
	rest, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	parts := strings.Split(rest, ":")
	if len(parts) != n {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
	}
	return parts, nil
}

// SlotDateArgs parses "<prefix><id>:<yyyymmdd>".
func SlotDateArgs(data, prefix string) (string, calendar.Date, error) {
	parts, err := Args(data, prefix, 2)
	if err != nil {
		return "", calendar.Date{}, err
	}
	date, err := ParseDate(parts[1])
	if err != nil {
		return "", calendar.Date{}, err
	}
	return parts[0], date, nil
}
