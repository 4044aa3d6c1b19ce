package booking

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/callbacktypes"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common/formatting"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common/keyboard"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/service"
	"go.uber.org/zap"
)

// HandleBookStart begins booking an occurrence. The slot and date are kept in
// dialog state because the following buttons cannot carry them.
func HandleBookStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		slotID, date, err := common.SlotDateArgs(callback.Data, common.BookStart)
		if err != nil {
			common.HandleError(hc, err, "book_start")
			return
		}
		startBooking(hc, slotID, date, false)
	})
}

// HandleBookNext begins booking whichever occurrence of a recurring slot
// comes next. The date is shown for confirmation and picked again on confirm.
func HandleBookNext(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.Args(callback.Data, common.BookNext, 1)
		if err != nil {
			common.HandleError(hc, err, "book_next")
			return
		}
		date, err := h.Bookings.NextDate(ctx, hc.Session, args[0])
		if err != nil {
			common.HandleError(hc, err, "book_next")
			return
		}
		startBooking(hc, args[0], date, true)
	})
}

func startBooking(hc *common.HandlerContext, slotID string, date calendar.Date, next bool) {
	if !hc.Session.HasRole(model.RoleParent, model.RoleStudent) {
		common.HandleError(hc, service.ErrForbidden, "book_start")
		return
	}

	hc.ClearState()
	hc.SetState(callbacktypes.StateBookingPending)
	hc.SetData(callbacktypes.KeySlotID, slotID)
	hc.SetData(callbacktypes.KeyDate, common.FormatDate(date))
	if next {
		hc.SetData(callbacktypes.KeyNext, "1")
	}

	if hc.Session.HasRole(model.RoleParent) {
		switch len(hc.Session.Children) {
		case 0:
			hc.ClearState()
			hc.AnswerAlert("👧 Du har inga registrerade barn. Lägg till dem på webbplatsen först.")
			return
		case 1:
			hc.SetData(callbacktypes.KeyChildID, hc.Session.Children[0].ID)
		default:
			text, kb := common.BuildChildSelect(hc.Session.Children)
			if err := hc.EditMessage(text, kb); err != nil {
				hc.Handler.Logger.Error("Failed to show child select", zap.Error(err))
			}
			hc.Answer("")
			return
		}
	}

	showConfirm(hc)
}

// HandleBookChild records which child a parent is booking for.
func HandleBookChild(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.Args(callback.Data, common.BookChild, 1)
		if err != nil {
			common.HandleError(hc, err, "book_child")
			return
		}
		if h.StateManager.GetState(hc.TelegramID) != callbacktypes.StateBookingPending {
			common.HandleError(hc, common.ErrDialogExpired, "book_child")
			return
		}
		if _, ok := hc.Session.Child(args[0]); !ok {
			common.HandleError(hc, service.ErrUnknownChild, "book_child")
			return
		}

		hc.SetData(callbacktypes.KeyChildID, args[0])
		showConfirm(hc)
	})
}

func showConfirm(hc *common.HandlerContext) {
	slotID, date, err := pending(hc)
	if err != nil {
		hc.ClearState()
		common.HandleError(hc, err, "book_confirm_screen")
		return
	}

	view, err := hc.Handler.Schedule.Occurrence(hc.Ctx, slotID, date)
	if err != nil {
		hc.ClearState()
		common.HandleError(hc, err, "book_confirm_screen")
		return
	}

	venueName := ""
	if v, err := hc.Handler.Schedule.Venue(hc.Ctx, view.Slot.VenueID); err == nil {
		venueName = v.Name
	}

	childName := ""
	if id, ok := hc.GetString(callbacktypes.KeyChildID); ok {
		if c, ok := hc.Session.Child(id); ok {
			childName = c.FirstName
		}
	}

	text, kb := common.BuildBookingConfirm(view, venueName, childName)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to show booking confirmation", zap.Error(err))
	}
	hc.Answer("")
}

// HandleBookConfirm posts the pending booking.
func HandleBookConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if h.StateManager.GetState(hc.TelegramID) != callbacktypes.StateBookingPending {
			common.HandleError(hc, common.ErrDialogExpired, "book_confirm")
			return
		}
		slotID, date, err := pending(hc)
		if err != nil {
			hc.ClearState()
			common.HandleError(hc, err, "book_confirm")
			return
		}

		req := service.BookRequest{SlotID: slotID, Date: date}
		if id, ok := hc.GetString(callbacktypes.KeyChildID); ok {
			req.ChildID = &id
		}

		var booking *model.Booking
		if _, next := hc.GetString(callbacktypes.KeyNext); next {
			booking, err = h.Bookings.BookNext(ctx, hc.Session, slotID, req.ChildID)
		} else {
			booking, err = h.Bookings.Book(ctx, hc.Session, req)
		}
		hc.ClearState()
		if err != nil {
			common.HandleError(hc, err, "book_confirm")
			return
		}

		h.Logger.Info("Booking confirmed in chat",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("booking_id", booking.ID))

		text := fmt.Sprintf("✅ <b>Bokat!</b>\n\n📅 %s", formatting.FormatDate(booking.BookingDate))
		if booking.ChildName != "" {
			text += "\n👧 " + booking.ChildName
		}
		text += "\n\nDu kan avboka fram till 2 timmar före start via /mybookings."

		kb := keyboard.NewBuilder().
			Row(keyboard.Button("📋 Mina bokningar", common.MyBookings)).
			Row(keyboard.Button("🏫 Boka fler", common.VenueList)).
			Build()
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show booking result", zap.Error(err))
		}
		hc.Answer("✅ Bokat")
	})
}

// HandleBookAbort drops the pending booking.
func HandleBookAbort(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		kb := keyboard.NewBuilder().Row(keyboard.Button("🏫 Till läxhjälpsställen", common.VenueList)).Build()
		if err := hc.EditMessage("Bokningen avbröts.", kb); err != nil {
			h.Logger.Error("Failed to show abort", zap.Error(err))
		}
		hc.Answer("")
	})
}

func pending(hc *common.HandlerContext) (string, calendar.Date, error) {
	slotID, ok := hc.GetString(callbacktypes.KeySlotID)
	if !ok {
		return "", calendar.Date{}, common.ErrDialogExpired
	}
	raw, ok := hc.GetString(callbacktypes.KeyDate)
	if !ok {
		return "", calendar.Date{}, common.ErrDialogExpired
	}
	date, err := common.ParseDate(raw)
	if err != nil {
		return "", calendar.Date{}, err
	}
	return slotID, date, nil
}
