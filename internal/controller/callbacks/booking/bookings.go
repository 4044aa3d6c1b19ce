package booking

import (
	"context"
	"errors"
	"slices"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pluggkompis/pluggkompis_bot/internal/api"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/callbacktypes"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common"
	"github.com/pluggkompis/pluggkompis_bot/internal/service"
	"go.uber.org/zap"
)

// HandleMyBookings lists the caller's bookings.
func HandleMyBookings(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		showBookings(hc)
		hc.Answer("")
	})
}

func showBookings(hc *common.HandlerContext) {
	views, err := hc.Handler.Bookings.MyBookings(hc.Ctx, hc.Session)
	if err != nil {
		common.HandleError(hc, err, "my_bookings")
		return
	}
	text, kb := common.BuildBookingsScreen(views, calendar.DateOf(hc.Handler.Now()))
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to show bookings", zap.Error(err))
	}
}

// HandleCancelBooking asks for confirmation before cancelling.
func HandleCancelBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.Args(callback.Data, common.CancelBooking, 1)
		if err != nil {
			common.HandleError(hc, err, "cancel_booking")
			return
		}

		views, err := h.Bookings.MyBookings(ctx, hc.Session)
		if err != nil {
			common.HandleError(hc, err, "cancel_booking")
			return
		}
		i := slices.IndexFunc(views, func(v service.BookingView) bool { return v.ID == args[0] })
		if i < 0 {
			common.HandleError(hc, api.ErrNotFound, "cancel_booking")
			return
		}
		if !views[i].CanCancel {
			common.HandleError(hc, service.ErrCancellationWindow, "cancel_booking")
			return
		}

		text, kb := common.BuildCancelConfirm(views[i])
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show cancel confirmation", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleConfirmCancel cancels the booking and shows the refreshed list.
func HandleConfirmCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.Args(callback.Data, common.ConfirmCancel, 1)
		if err != nil {
			common.HandleError(hc, err, "confirm_cancel")
			return
		}

		if err := h.Bookings.Cancel(ctx, hc.Session, args[0]); err != nil {
			if errors.Is(err, service.ErrCancellationWindow) {
				showBookings(hc)
			}
			common.HandleError(hc, err, "confirm_cancel")
			return
		}

		h.Logger.Info("Booking cancelled in chat",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("booking_id", args[0]))

		showBookings(hc)
		hc.Answer("✅ Avbokat")
	})
}
