package callbacks

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/callbacktypes"
	"github.com/pluggkompis/pluggkompis_bot/internal/service"
	"go.uber.org/zap"
)

// Handler wraps callbacktypes.Handler with the entry point registered on the bot.
type Handler struct {
	*callbacktypes.Handler
}

func NewHandler(
	sessions *service.SessionService,
	schedule *service.ScheduleService,
	bookings *service.BookingService,
	volunteers *service.VolunteerService,
	coordinators *service.CoordinatorService,
	stateManager callbacktypes.StateManager,
	loc *time.Location,
	logger *zap.Logger,
) *Handler {
	return &Handler{Handler: &callbacktypes.Handler{
		Sessions:     sessions,
		Schedule:     schedule,
		Bookings:     bookings,
		Volunteers:   volunteers,
		Coordinators: coordinators,
		StateManager: stateManager,
		Location:     loc,
		Logger:       logger,
	}}
}

// HandleCallbackQuery is the bot's handler for every callback query.
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery
	h.Logger.Debug("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("telegram_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
