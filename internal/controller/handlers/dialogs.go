package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common/formatting"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/state"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"go.uber.org/zap"
)

// HandleLogin starts the email/password dialog.
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if sess, err := h.sessions.Current(ctx, telegramID); err == nil {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("Du är redan inloggad som %s. Skriv /logout för att byta konto.", html.EscapeString(sess.User.Email)), nil)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateLoginEmail)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🔐 <b>Logga in</b>\n\nSkriv e-postadressen till ditt Pluggkompis-konto.\n\nAvbryt med /cancel", nil)
}

func (h *Handlers) handleLoginEmail(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.TrimSpace(update.Message.Text)

	h.stateManager.SetData(telegramID, state.KeyEmail, email)
	h.stateManager.SetState(telegramID, state.StateLoginPassword)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🔑 Skriv ditt lösenord. Meddelandet raderas direkt efteråt.", nil)
}

func (h *Handlers) handleLoginPassword(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := update.Message.Text

	// The password should not stay in the chat history.
	if _, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: chatID, MessageID: update.Message.ID}); err != nil {
		h.logger.Warn("Failed to delete password message", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}

	email, ok := h.stateManager.GetString(telegramID, state.KeyEmail)
	h.stateManager.ClearState(telegramID)
	if !ok {
		h.sendError(ctx, b, chatID, common.ErrDialogExpired)
		return
	}

	sess, err := h.sessions.Login(ctx, telegramID, email, password)
	if err != nil {
		h.logger.Info("Login failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, common.ErrorMessage(err)+"\n\nFörsök igen med /login", nil)
		return
	}

	text := fmt.Sprintf("✅ Inloggad som %s (%s).",
		html.EscapeString(sess.User.FullName()), strings.ToLower(formatting.RoleName(sess.User.Role)))
	switch {
	case sess.HasRole(model.RoleParent):
		text += "\n\nBoka läxhjälp för dina barn via /venues."
	case sess.HasRole(model.RoleStudent):
		text += "\n\nBoka läxhjälp via /venues."
	case sess.HasRole(model.RoleVolunteer):
		text += "\n\nSe dina pass med /shifts eller ansök till ett ställe via /venues."
	case sess.HasRole(model.RoleCoordinator):
		text += "\n\nGranska ansökningar med /applications."
	}
	_, kb := common.BuildMainMenu(sess)
	h.sendMessage(ctx, b, chatID, text, kb)
}

func (h *Handlers) handleApplyMotivation(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	sess, ok := h.requireSession(ctx, b, update)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	venueID, ok := h.stateManager.GetString(telegramID, state.KeyVenueID)
	if !ok {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrDialogExpired)
		return
	}

	app, err := h.volunteers.Apply(ctx, sess, venueID, update.Message.Text)
	if err != nil {
		h.logger.Info("Application rejected", zap.Int64("telegram_id", telegramID), zap.Error(err))
		// Stay in the dialog so the user can fix the text.
		h.sendMessage(ctx, b, chatID, common.ErrorMessage(err)+"\n\nSkriv igen eller avbryt med /cancel.", nil)
		return
	}

	h.stateManager.ClearState(telegramID)
	st := formatting.ApplicationStatus(app.Status)
	h.sendMessage(ctx, b, chatID,
		fmt.Sprintf("%s Tack! Din ansökan är skickad (%s). Samordnaren hör av sig.", st.Emoji, strings.ToLower(st.Text)), nil)
}
