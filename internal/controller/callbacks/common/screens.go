package common

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/callbacktypes"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common/formatting"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common/keyboard"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/render"
	"github.com/pluggkompis/pluggkompis_bot/internal/service"
	"go.uber.org/zap"
)

const (
	venuesPerPage   = 8
	maxWeekButtons  = 12
	maxWeeksForward = 26
)

// BuildVenueListScreen lists one page of venues as buttons, one per row.
func BuildVenueListScreen(venues []model.Venue, page int) (string, *models.InlineKeyboardMarkup) {
	if len(venues) == 0 {
		return "🏫 Det finns inga aktiva läxhjälpsställen just nu.", nil
	}

	start, end, pages := keyboard.Page(len(venues), page, venuesPerPage)
	kb := keyboard.NewBuilder()
	for _, v := range venues[start:end] {
		label := "🏫 " + v.Name
		if v.City != "" {
			label += " · " + v.City
		}
		kb.Row(keyboard.Button(label, Data(VenueSelect, v.ID)))
	}
	kb.AddPagination(VenuePage, start/venuesPerPage, pages)
	return "🏫 <b>Välj läxhjälpsställe</b>\n\nDu ser veckans pass och lediga platser.", kb.Build()
}

// SendWeek renders the venue week containing anchor and sends it as a photo
// with a keyboard of the occurrences the caller can act on. sess may be nil
// for browsing without login.
func SendWeek(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler, sess *model.Session, venueID string, anchor calendar.Date) error {
	week, err := h.Schedule.VenueWeek(ctx, venueID, anchor)
	if err != nil {
		return err
	}

	now := h.Now()
	png, err := render.WeekImage(week, now)
	if err != nil {
		return err
	}

	caption, kb := BuildWeekScreen(week, sess, calendar.DateOf(now), now)
	if err := SendPhoto(ctx, b, chatID, png, caption, kb); err != nil {
		h.Logger.Warn("Failed to send week image, falling back to text",
			zap.String("venue_id", venueID), zap.Error(err))
		return SendMessage(ctx, b, chatID, caption, kb)
	}
	return nil
}

// BuildWeekScreen builds the caption and keyboard for a week view.
func BuildWeekScreen(week *service.WeekView, sess *model.Session, today calendar.Date, now time.Time) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏫 <b>%s</b>\n📅 %s\n", html.EscapeString(week.Venue.Name), formatting.FormatWeek(week.Days))
	if week.Venue.Address != "" {
		fmt.Fprintf(&sb, "📍 %s\n", html.EscapeString(week.Venue.Address))
	}

	kb := keyboard.NewBuilder()
	shown := 0
	for _, s := range week.Slots {
		if !s.Start.After(now) || shown == maxWeekButtons {
			continue
		}
		if !actionable(s, sess) {
			continue
		}
		tier := formatting.Tier(s.Availability)
		label := fmt.Sprintf("%s %s %s · %d/%d", tier.Emoji, formatting.FormatShortDate(s.Date),
			s.Slot.StartTime, s.Availability.Remaining, s.Availability.Capacity)
		kb.Row(keyboard.Button(label, Data(Occurrence, s.SlotID, FormatDate(s.Date))))
		shown++
	}

	switch {
	case len(week.Slots) == 0:
		sb.WriteString("\nInga pass den här veckan.")
	case shown == 0:
		sb.WriteString("\nInga bokningsbara pass kvar den här veckan.")
	default:
		sb.WriteString("\nVälj ett pass nedan.")
	}
	if week.Skipped > 0 {
		fmt.Fprintf(&sb, "\n⚠️ %d pass kunde inte visas.", week.Skipped)
	}
	if sess == nil {
		sb.WriteString("\n\n🔒 Logga in med /login för att boka.")
	}

	prev := ""
	thisWeek := calendar.WeekStart(today)
	if week.Days[0].After(thisWeek) {
		prev = Data(WeekNav, week.Venue.ID, FormatDate(week.Days[0].AddDays(-7)))
	}
	next := ""
	if thisWeek.DaysUntil(week.Days[0]) < maxWeeksForward*7 {
		next = Data(WeekNav, week.Venue.ID, FormatDate(week.Days[0].AddDays(7)))
	}
	switch {
	case next != "":
		kb.Row(keyboard.WeekPagination(fmt.Sprintf("v. %s", weekNumber(week.Days[0])), prev, next)...)
	case prev != "":
		kb.Row(keyboard.Button("◀️", prev))
	}

	if sess != nil {
		switch {
		case sess.HasRole(model.RoleVolunteer):
			kb.Row(keyboard.Button("🙋 Ansök som volontär här", Data(ApplyVenue, week.Venue.ID)))
		case sess.HasRole(model.RoleCoordinator):
			kb.Row(keyboard.Button("📋 Volontäransökningar", Data(Applications, week.Venue.ID)))
		}
	}
	kb.Row(keyboard.BackButton(VenueList))

	return sb.String(), kb.Build()
}

// ClampWeek keeps anchor between the current week and maxWeeksForward weeks
// ahead, the range the week screen offers navigation for.
func ClampWeek(anchor, today calendar.Date) calendar.Date {
	first := calendar.WeekStart(today)
	last := first.AddDays(maxWeeksForward * 7)
	switch {
	case anchor.Before(first):
		return first
	case anchor.After(last):
		return last
	}
	return anchor
}

func actionable(s service.SlotView, sess *model.Session) bool {
	if sess != nil && sess.HasRole(model.RoleVolunteer, model.RoleCoordinator) {
		return !s.Availability.Cancelled
	}
	return s.Availability.Bookable()
}

func weekNumber(monday calendar.Date) string {
	_, w := monday.In(time.UTC).ISOWeek()
	return fmt.Sprint(w)
}

// BuildOccurrenceScreen describes one occurrence with the actions open to the
// caller's role.
func BuildOccurrenceScreen(s service.SlotView, venueID string, sess *model.Session) (string, *models.InlineKeyboardMarkup) {
	tier := formatting.Tier(s.Availability)

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 <b>%s</b>\n", formatting.FormatDate(s.Date))
	fmt.Fprintf(&sb, "🕒 %s\n", formatting.FormatTimeRange(s.Slot.StartTime, s.Slot.EndTime))
	if names := s.Slot.SubjectNames(); len(names) > 0 {
		fmt.Fprintf(&sb, "📚 %s\n", html.EscapeString(strings.Join(names, ", ")))
	}
	fmt.Fprintf(&sb, "%s %s · %s kvar av %d\n", tier.Emoji, tier.Text,
		formatting.Seats(s.Availability.Remaining), s.Availability.Capacity)

	slotDate := []string{s.SlotID, FormatDate(s.Date)}
	kb := keyboard.NewBuilder()
	switch {
	case sess == nil:
		sb.WriteString("\n🔒 Logga in med /login för att boka.")
	case sess.HasRole(model.RoleParent, model.RoleStudent):
		if s.Availability.Bookable() {
			kb.Row(keyboard.Button("✅ Boka plats", Data(BookStart, slotDate...)))
			if s.Slot.Recurrence.Weekly != nil {
				kb.Row(keyboard.Button("⏭ Boka nästa tillfälle", Data(BookNext, s.SlotID)))
			}
		}
	case sess.HasRole(model.RoleVolunteer):
		kb.Row(keyboard.Button("🙋 Anmäl mig till passet", Data(ShiftSignUp, slotDate...)))
	case sess.HasRole(model.RoleCoordinator):
		kb.Row(keyboard.Button("📋 Närvarolista", Data(AttendanceList, slotDate...)))
	}
	kb.Row(keyboard.BackButton(Data(WeekNav, venueID, FormatDate(s.Date))))

	return sb.String(), kb.Build()
}

// BuildChildSelect asks a parent which child the booking is for.
func BuildChildSelect(children []model.Child) (string, *models.InlineKeyboardMarkup) {
	buttons := make([]models.InlineKeyboardButton, 0, len(children))
	for _, c := range children {
		buttons = append(buttons, keyboard.Button("👧 "+c.FirstName, Data(BookChild, c.ID)))
	}
	kb := keyboard.NewBuilder().Grid(2, buttons...)
	kb.Row(keyboard.CancelButton(BookAbort))
	return "👨‍👩‍👧 <b>Vem ska gå på passet?</b>", kb.Build()
}

// BuildBookingConfirm is the last step before posting a booking.
func BuildBookingConfirm(s service.SlotView, venueName, childName string) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("📝 <b>Bekräfta bokning</b>\n\n")
	fmt.Fprintf(&sb, "🏫 %s\n", html.EscapeString(venueName))
	fmt.Fprintf(&sb, "📅 %s\n", formatting.FormatDate(s.Date))
	fmt.Fprintf(&sb, "🕒 %s\n", formatting.FormatTimeRange(s.Slot.StartTime, s.Slot.EndTime))
	if childName != "" {
		fmt.Fprintf(&sb, "👧 %s\n", html.EscapeString(childName))
	}
	sb.WriteString("\nAvbokning går fram till 2 timmar före start.")

	return sb.String(), keyboard.NewBuilder().Row(keyboard.ConfirmCancelRow(BookConfirm, BookAbort)...).Build()
}

// BuildBookingsScreen lists the caller's bookings with cancel buttons where
// cancellation is still allowed.
func BuildBookingsScreen(views []service.BookingView, today calendar.Date) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("📋 <b>Mina bokningar</b>\n")

	kb := keyboard.NewBuilder()
	shown := 0
	for _, v := range views {
		if v.BookingDate.Before(today) && v.Status != model.BookingStatusConfirmed {
			continue
		}
		st := formatting.BookingStatus(v.Status)
		fmt.Fprintf(&sb, "\n%s %s", st.Emoji, formatting.FormatShortDate(v.BookingDate))
		if v.SlotStart != nil {
			fmt.Fprintf(&sb, " %s", v.SlotStart)
		}
		if v.VenueName != "" {
			fmt.Fprintf(&sb, " · %s", html.EscapeString(v.VenueName))
		}
		if v.ChildName != "" {
			fmt.Fprintf(&sb, " · %s", html.EscapeString(v.ChildName))
		}
		if v.Status != model.BookingStatusConfirmed {
			fmt.Fprintf(&sb, " (%s)", strings.ToLower(st.Text))
		}
		if v.CanCancel {
			label := "❌ Avboka " + formatting.FormatShortDate(v.BookingDate)
			if v.ChildName != "" {
				label += " " + v.ChildName
			}
			kb.Row(keyboard.Button(label, Data(CancelBooking, v.ID)))
		}
		shown++
	}
	if shown == 0 {
		sb.WriteString("\nDu har inga kommande bokningar. Hitta ett pass med /venues")
	}
	kb.Row(keyboard.Button("🏫 Boka fler", VenueList))
	return sb.String(), kb.Build()
}

// BuildCancelConfirm asks before cancelling.
func BuildCancelConfirm(v service.BookingView) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("❓ Vill du avboka passet %s", formatting.FormatDate(v.BookingDate))
	if v.SlotStart != nil {
		text += " kl " + v.SlotStart.String()
	}
	if v.ChildName != "" {
		text += " för " + html.EscapeString(v.ChildName)
	}
	text += "?"
	if v.Deadline != nil {
		text += "\n\n⏰ Sista avbokning: " + formatting.FormatDateTime(*v.Deadline)
	}
	return text, keyboard.NewBuilder().Row(keyboard.ConfirmCancelRow(Data(ConfirmCancel, v.ID), MyBookings)...).Build()
}

// BuildApplicationsScreen lists pending volunteer applications for a venue.
func BuildApplicationsScreen(venueName string, apps []model.VolunteerApplication) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 <b>Ansökningar · %s</b>\n", html.EscapeString(venueName))

	kb := keyboard.NewBuilder()
	for _, a := range apps {
		fmt.Fprintf(&sb, "\n⏳ <b>%s</b> (%s)\n%s\n", html.EscapeString(a.VolunteerName),
			a.AppliedAt.Format("2/1"), html.EscapeString(a.Motivation))
		kb.Row(
			keyboard.Button("✅ "+a.VolunteerName, Data(ApproveApp, a.ID)),
			keyboard.Button("🚫 Neka", Data(DeclineApp, a.ID)),
		)
	}
	if len(apps) == 0 {
		sb.WriteString("\nInga väntande ansökningar.")
	}
	kb.Row(keyboard.MainMenuButton())
	return sb.String(), kb.Build()
}

// BuildAttendanceScreen shows the booked children for one occurrence; tapping
// a row toggles attended.
func BuildAttendanceScreen(slotID string, date calendar.Date, rows []model.Attendance) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 <b>Närvaro %s</b>\n", formatting.FormatDate(date))

	kb := keyboard.NewBuilder()
	attended := 0
	for _, r := range rows {
		if r.Status == model.BookingStatusCancelled {
			continue
		}
		mark, next := "⬜️", "1"
		if r.Attended() {
			mark, next = "✅", "0"
			attended++
		}
		kb.Row(keyboard.Button(mark+" "+r.ChildName, Data(AttendanceToggle, r.BookingID, next)))
	}
	if kb.Len() == 0 {
		sb.WriteString("\nInga bokningar på passet.")
	} else {
		fmt.Fprintf(&sb, "\n%d av %d närvarande. Tryck på ett namn för att ändra.", attended, kb.Len())
	}
	kb.Row(keyboard.Button("🔄 Uppdatera", Data(AttendanceList, slotID, FormatDate(date))))
	return sb.String(), kb.Build()
}

// BuildMainMenu is the start screen. sess may be nil.
func BuildMainMenu(sess *model.Session) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().Row(keyboard.Button("🏫 Läxhjälpsställen", VenueList))

	if sess == nil {
		return "👋 <b>Välkommen till Pluggkompis!</b>\n\n" +
			"Här hittar du gratis läxhjälp nära dig.\n" +
			"Bläddra bland ställen och pass, eller logga in med /login för att boka.", kb.Build()
	}

	text := fmt.Sprintf("👋 <b>Hej %s!</b>\nInloggad som %s.",
		html.EscapeString(sess.User.FirstName), strings.ToLower(formatting.RoleName(sess.User.Role)))
	if sess.HasRole(model.RoleParent, model.RoleStudent) {
		kb.Row(keyboard.Button("📋 Mina bokningar", MyBookings))
	}
	return text, kb.Build()
}
