package controller

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/handlers"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/state"
	"github.com/pluggkompis/pluggkompis_bot/internal/service"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	sessions *service.SessionService,
	schedule *service.ScheduleService,
	bookings *service.BookingService,
	volunteers *service.VolunteerService,
	coordinators *service.CoordinatorService,
	loc *time.Location,
	logger *zap.Logger,
) *BotController {
	stateManager := state.NewManager()

	callbackHandler := callbacks.NewHandler(
		sessions,
		schedule,
		bookings,
		volunteers,
		coordinators,
		state.NewAdapter(stateManager),
		loc,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        handlers.NewHandlers(callbackHandler.Handler, stateManager),
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers wires commands, dialog text and callback queries.
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/venues", bot.MatchTypeExact, c.handlers.HandleVenues)

	// Parents and students
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/children", bot.MatchTypeExact, c.handlers.HandleChildren)

	// Volunteers
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/shifts", bot.MatchTypeExact, c.handlers.HandleShifts)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/hours", bot.MatchTypePrefix, c.handlers.HandleHours)

	// Coordinators
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/applications", bot.MatchTypeExact, c.handlers.HandleApplications)

	// Dialog steps
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🏠 Startmeny"},
		{Command: "venues", Description: "🏫 Läxhjälpsställen och pass"},
		{Command: "mybookings", Description: "📋 Mina bokningar"},
		{Command: "children", Description: "👨‍👩‍👧 Mina barn"},
		{Command: "shifts", Description: "🗓 Mina volontärpass"},
		{Command: "hours", Description: "🕒 Timrapport (PDF)"},
		{Command: "applications", Description: "📋 Volontäransökningar (samordnare)"},
		{Command: "login", Description: "🔐 Logga in"},
		{Command: "logout", Description: "👋 Logga ut"},
		{Command: "cancel", Description: "✖️ Avbryt dialog"},
		{Command: "help", Description: "❓ Hjälp"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start runs long polling until ctx is cancelled.
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
