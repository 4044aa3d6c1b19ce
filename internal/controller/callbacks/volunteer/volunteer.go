package volunteer

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/callbacktypes"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common/formatting"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common/keyboard"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/service"
	"go.uber.org/zap"
)

// HandleApplyVenue starts the application dialog; the motivation arrives as
// the next text message.
func HandleApplyVenue(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.Args(callback.Data, common.ApplyVenue, 1)
		if err != nil {
			common.HandleError(hc, err, "apply_venue")
			return
		}
		if !hc.Session.HasRole(model.RoleVolunteer) {
			common.HandleError(hc, service.ErrForbidden, "apply_venue")
			return
		}

		venueName := args[0]
		if v, err := h.Schedule.Venue(ctx, args[0]); err == nil {
			venueName = v.Name
		}

		hc.ClearState()
		hc.SetState(callbacktypes.StateApplyMotivation)
		hc.SetData(callbacktypes.KeyVenueID, args[0])

		text := fmt.Sprintf("🙋 <b>Ansökan till %s</b>\n\n"+
			"Berätta kort varför du vill vara volontär (20–1000 tecken).\n"+
			"Skriv /cancel för att avbryta.", venueName)
		if err := hc.SendMessage(text, nil); err != nil {
			h.Logger.Error("Failed to ask for motivation", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleShiftSignUp registers the volunteer for one occurrence.
func HandleShiftSignUp(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		slotID, date, err := common.SlotDateArgs(callback.Data, common.ShiftSignUp)
		if err != nil {
			common.HandleError(hc, err, "shift_signup")
			return
		}

		shift, err := h.Volunteers.SignUpShift(ctx, hc.Session, slotID, date)
		if err != nil {
			common.HandleError(hc, err, "shift_signup")
			return
		}

		text := fmt.Sprintf("✅ Du är anmäld till passet %s.\n\nSe dina pass med /shifts.",
			formatting.FormatDate(shift.Date))
		kb := keyboard.NewBuilder().Row(keyboard.Button("🏫 Till läxhjälpsställen", common.VenueList)).Build()
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show shift result", zap.Error(err))
		}
		hc.Answer("✅ Anmäld")
	})
}
