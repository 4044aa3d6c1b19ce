package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common/keyboard"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/state"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/service"
	"go.uber.org/zap"
)

// HandleStart shows the main menu.
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	sess, err := h.sessions.Current(ctx, update.Message.From.ID)
	if err != nil && !errors.Is(err, service.ErrNotLoggedIn) {
		h.logger.Error("Failed to load session", zap.Int64("telegram_id", update.Message.From.ID), zap.Error(err))
	}

	text, kb := common.BuildMainMenu(sess)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "❓ <b>Kommandon</b>\n\n" +
		"/venues – läxhjälpsställen och veckans pass\n" +
		"/login – logga in med ditt Pluggkompis-konto\n" +
		"/logout – logga ut\n" +
		"/cancel – avbryt pågående dialog\n\n" +
		"<b>Föräldrar och elever</b>\n" +
		"/mybookings – mina bokningar och avbokning\n" +
		"/children – mina registrerade barn\n\n" +
		"<b>Volontärer</b>\n" +
		"/shifts – mina kommande pass\n" +
		"/hours [från] [till] – timrapport som PDF (datum som 2026-01-31)\n\n" +
		"<b>Samordnare</b>\n" +
		"/applications – volontäransökningar att granska\n\n" +
		"Avbokning går fram till 2 timmar före passets start."

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel aborts the dialog in progress.
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Det finns inget att avbryta.", nil)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Avbrutet. Skriv /help för att se kommandona.", nil)
}

// HandleLogout deletes the stored session.
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)
	if err := h.sessions.Logout(ctx, telegramID); err != nil {
		h.logger.Error("Failed to log out", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, "👋 Du är utloggad.", nil)
}

// HandleVenues lists active venues.
func (h *Handlers) HandleVenues(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	venues, err := h.schedule.Venues(ctx)
	if err != nil {
		h.logger.Error("Failed to list venues", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}

	text, kb := common.BuildVenueListScreen(venues, 0)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleMyBookings lists the caller's bookings with cancel buttons.
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireRole(ctx, b, update, model.RoleParent, model.RoleStudent)
	if !ok {
		return
	}

	views, err := h.bookings.MyBookings(ctx, sess)
	if err != nil {
		h.logger.Error("Failed to list bookings", zap.String("user_id", sess.User.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}

	text, kb := common.BuildBookingsScreen(views, calendar.DateOf(h.deps.Now()))
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleChildren re-reads the account from the backend and lists the children.
func (h *Handlers) HandleChildren(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireRole(ctx, b, update, model.RoleParent)
	if !ok {
		return
	}

	fresh, err := h.sessions.Refresh(ctx, sess)
	if err != nil {
		h.logger.Warn("Failed to refresh session", zap.Int64("telegram_id", sess.TelegramID), zap.Error(err))
		if errors.Is(err, service.ErrNotLoggedIn) {
			h.sendError(ctx, b, update.Message.Chat.ID, err)
			return
		}
		fresh = sess
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, formatChildren(fresh.Children, h.deps.Now().Year()), nil)
}

// HandleShifts lists the volunteer's upcoming shifts.
func (h *Handlers) HandleShifts(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireRole(ctx, b, update, model.RoleVolunteer)
	if !ok {
		return
	}

	shifts, err := h.volunteers.UpcomingShifts(ctx, sess)
	if err != nil {
		h.logger.Error("Failed to list shifts", zap.String("user_id", sess.User.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, formatShifts(shifts), nil)
}

// HandleHours sends the volunteer hour report as a PDF. Accepts
// "/hours [from] [to]" with ISO dates.
func (h *Handlers) HandleHours(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireRole(ctx, b, update, model.RoleVolunteer)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	from, to, err := parseHoursRange(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, "📅 Ange datum som 2026-01-31, till exempel /hours 2026-01-01 2026-06-30", nil)
		return
	}

	pdf, err := h.volunteers.ExportHours(ctx, sess, from, to)
	if err != nil {
		h.logger.Error("Failed to export hours", zap.String("user_id", sess.User.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, err)
		return
	}

	name := hoursFilename(from, to, h.deps.Now())
	if err := common.SendDocument(ctx, b, chatID, name, pdf, "🕒 Din timrapport"); err != nil {
		h.logger.Error("Failed to send hour report", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// HandleApplications lets a coordinator pick a venue to review applications for.
func (h *Handlers) HandleApplications(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireRole(ctx, b, update, model.RoleCoordinator); !ok {
		return
	}

	venues, err := h.schedule.Venues(ctx)
	if err != nil {
		h.logger.Error("Failed to list venues", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}
	if len(venues) == 0 {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "🏫 Det finns inga aktiva läxhjälpsställen.", nil)
		return
	}

	kb := keyboard.NewBuilder()
	for _, v := range venues {
		kb.Row(keyboard.Button("📋 "+v.Name, common.Data(common.Applications, v.ID)))
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, "📋 <b>Volontäransökningar</b>\n\nVälj ställe:", kb.Build())
}

// HandleTextMessage routes free text to the dialog step the user is in.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	switch currentState {
	case state.StateNone:
		h.logger.Debug("No active state, ignoring message", zap.Int64("telegram_id", telegramID))
	case state.StateLoginEmail:
		h.handleLoginEmail(ctx, b, update)
	case state.StateLoginPassword:
		h.handleLoginPassword(ctx, b, update)
	case state.StateApplyMotivation:
		h.handleApplyMotivation(ctx, b, update)
	case state.StateBookingPending:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Använd knapparna ovan för att slutföra bokningen, eller /cancel.", nil)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}
