package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/booking"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/callbacktypes"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/coordinator"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/volunteer"
	"go.uber.org/zap"
)

// Route dispatches a callback query by its data prefix.
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	case data == common.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")
	case data == common.MainMenu:
		handleMainMenu(ctx, b, callback, h)

	// ===== Browsing =====
	case data == common.VenueList:
		booking.HandleVenueList(ctx, b, callback, h)
	case strings.HasPrefix(data, common.VenuePage):
		booking.HandleVenuePage(ctx, b, callback, h)
	case strings.HasPrefix(data, common.VenueSelect):
		booking.HandleVenueSelect(ctx, b, callback, h)
	case strings.HasPrefix(data, common.WeekNav):
		booking.HandleWeekNav(ctx, b, callback, h)
	case strings.HasPrefix(data, common.Occurrence):
		booking.HandleOccurrence(ctx, b, callback, h)

	// ===== Booking =====
	case strings.HasPrefix(data, common.BookStart):
		booking.HandleBookStart(ctx, b, callback, h)
	case strings.HasPrefix(data, common.BookNext):
		booking.HandleBookNext(ctx, b, callback, h)
	case strings.HasPrefix(data, common.BookChild):
		booking.HandleBookChild(ctx, b, callback, h)
	case data == common.BookConfirm:
		booking.HandleBookConfirm(ctx, b, callback, h)
	case data == common.BookAbort:
		booking.HandleBookAbort(ctx, b, callback, h)
	case data == common.MyBookings:
		booking.HandleMyBookings(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CancelBooking):
		booking.HandleCancelBooking(ctx, b, callback, h)
	case strings.HasPrefix(data, common.ConfirmCancel):
		booking.HandleConfirmCancel(ctx, b, callback, h)

	// ===== Volunteer =====
	case strings.HasPrefix(data, common.ApplyVenue):
		volunteer.HandleApplyVenue(ctx, b, callback, h)
	case strings.HasPrefix(data, common.ShiftSignUp):
		volunteer.HandleShiftSignUp(ctx, b, callback, h)

	// ===== Coordinator =====
	case strings.HasPrefix(data, common.Applications):
		coordinator.HandleApplications(ctx, b, callback, h)
	case strings.HasPrefix(data, common.ApproveApp):
		coordinator.HandleApprove(ctx, b, callback, h)
	case strings.HasPrefix(data, common.DeclineApp):
		coordinator.HandleDecline(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AttendanceList):
		coordinator.HandleAttendanceList(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AttendanceToggle):
		coordinator.HandleAttendanceToggle(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("telegram_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Okänt kommando")
	}
}

func handleMainMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := hc.LoadSession(); err != nil {
			hc.Session = nil
		}
		hc.ClearState()
		text, kb := common.BuildMainMenu(hc.Session)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show main menu", zap.Error(err))
		}
		hc.Answer("")
	})
}
