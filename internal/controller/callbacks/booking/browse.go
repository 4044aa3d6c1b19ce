package booking

import (
	"context"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/callbacktypes"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common"
	"go.uber.org/zap"
)

// HandleVenueList shows the first page of venues.
func HandleVenueList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		showVenues(hc, 0)
	})
}

// HandleVenuePage shows another page of venues.
func HandleVenuePage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.Args(callback.Data, common.VenuePage, 1)
		if err != nil {
			common.HandleError(hc, err, "venue_page")
			return
		}
		page, err := strconv.Atoi(args[0])
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "venue_page")
			return
		}
		showVenues(hc, page)
	})
}

func showVenues(hc *common.HandlerContext, page int) {
	venues, err := hc.Handler.Schedule.Venues(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "list_venues")
		return
	}

	text, kb := common.BuildVenueListScreen(venues, page)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to show venues", zap.Error(err))
	}
	hc.Answer("")
}

// HandleVenueSelect opens the current week of a venue.
func HandleVenueSelect(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.Args(callback.Data, common.VenueSelect, 1)
		if err != nil {
			common.HandleError(hc, err, "venue_select")
			return
		}
		showWeek(hc, args[0], calendar.DateOf(h.Now()))
	})
}

// HandleWeekNav moves to another week of the same venue.
func HandleWeekNav(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		venueID, anchor, err := common.SlotDateArgs(callback.Data, common.WeekNav)
		if err != nil {
			common.HandleError(hc, err, "week_nav")
			return
		}
		showWeek(hc, venueID, common.ClampWeek(anchor, calendar.DateOf(h.Now())))
	})
}

// showWeek replaces the current message with the rendered week. Browsing
// works without login; the session only decides which actions are offered.
func showWeek(hc *common.HandlerContext, venueID string, anchor calendar.Date) {
	if err := hc.LoadSession(); err != nil {
		hc.Session = nil
	}

	if err := common.SendWeek(hc.Ctx, hc.Bot, hc.ChatID, hc.Handler, hc.Session, venueID, anchor); err != nil {
		common.HandleError(hc, err, "show_week")
		return
	}
	_ = hc.DeleteMessage()
	hc.Answer("")
}

// HandleOccurrence shows one occurrence with the actions for the caller's role.
func HandleOccurrence(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		slotID, date, err := common.SlotDateArgs(callback.Data, common.Occurrence)
		if err != nil {
			common.HandleError(hc, err, "occurrence")
			return
		}
		if err := hc.LoadSession(); err != nil {
			hc.Session = nil
		}

		view, err := h.Schedule.Occurrence(ctx, slotID, date)
		if err != nil {
			common.HandleError(hc, err, "occurrence")
			return
		}

		text, kb := common.BuildOccurrenceScreen(view, view.Slot.VenueID, hc.Session)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show occurrence", zap.String("slot_id", slotID), zap.Error(err))
		}
		hc.Answer("")
	})
}
