package coordinator

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/callbacktypes"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common"
	"go.uber.org/zap"
)

// HandleApplications lists pending volunteer applications for a venue.
func HandleApplications(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.Args(callback.Data, common.Applications, 1)
		if err != nil {
			common.HandleError(hc, err, "applications")
			return
		}
		hc.SetData(callbacktypes.KeyVenueID, args[0])
		showApplications(hc, args[0])
		hc.Answer("")
	})
}

func showApplications(hc *common.HandlerContext, venueID string) {
	apps, err := hc.Handler.Coordinators.PendingApplications(hc.Ctx, hc.Session, venueID)
	if err != nil {
		common.HandleError(hc, err, "applications")
		return
	}

	venueName := ""
	if v, err := hc.Handler.Schedule.Venue(hc.Ctx, venueID); err == nil {
		venueName = v.Name
	}

	text, kb := common.BuildApplicationsScreen(venueName, apps)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to show applications", zap.Error(err))
	}
}

// HandleApprove approves an application.
func HandleApprove(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		review(hc, common.ApproveApp, true)
	})
}

// HandleDecline declines an application.
func HandleDecline(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		review(hc, common.DeclineApp, false)
	})
}

func review(hc *common.HandlerContext, prefix string, approve bool) {
	args, err := common.Args(hc.Callback.Data, prefix, 1)
	if err != nil {
		common.HandleError(hc, err, "review_application")
		return
	}
	if err := hc.Handler.Coordinators.Review(hc.Ctx, hc.Session, args[0], approve); err != nil {
		common.HandleError(hc, err, "review_application")
		return
	}

	if venueID, ok := hc.GetString(callbacktypes.KeyVenueID); ok {
		showApplications(hc, venueID)
	}
	if approve {
		hc.Answer("✅ Godkänd")
	} else {
		hc.Answer("🚫 Nekad")
	}
}

// HandleAttendanceList shows who is booked on one occurrence.
func HandleAttendanceList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		slotID, date, err := common.SlotDateArgs(callback.Data, common.AttendanceList)
		if err != nil {
			common.HandleError(hc, err, "attendance_list")
			return
		}
		hc.SetData(callbacktypes.KeySlotID, slotID)
		hc.SetData(callbacktypes.KeyDate, common.FormatDate(date))
		showAttendance(hc, slotID, date)
		hc.Answer("")
	})
}

func showAttendance(hc *common.HandlerContext, slotID string, date calendar.Date) {
	rows, err := hc.Handler.Coordinators.SlotAttendance(hc.Ctx, hc.Session, slotID, date)
	if err != nil {
		common.HandleError(hc, err, "attendance_list")
		return
	}
	text, kb := common.BuildAttendanceScreen(slotID, date, rows)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to show attendance", zap.Error(err))
	}
}

// HandleAttendanceToggle marks one booking attended or not attended.
func HandleAttendanceToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.Args(callback.Data, common.AttendanceToggle, 2)
		if err != nil {
			common.HandleError(hc, err, "attendance_toggle")
			return
		}
		attended := args[1] == "1"

		if err := h.Coordinators.MarkAttendance(ctx, hc.Session, args[0], attended); err != nil {
			common.HandleError(hc, err, "attendance_toggle")
			return
		}

		slotID, okSlot := hc.GetString(callbacktypes.KeySlotID)
		raw, okDate := hc.GetString(callbacktypes.KeyDate)
		if okSlot && okDate {
			if date, err := common.ParseDate(raw); err == nil {
				showAttendance(hc, slotID, date)
			}
		}
		hc.Answer("")
	})
}
