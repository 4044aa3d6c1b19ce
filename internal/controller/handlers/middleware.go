package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/common"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/service"
	"go.uber.org/zap"
)

// requireSession loads the caller's session or tells them to log in.
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, bool) {
	if update.Message == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	sess, err := h.sessions.Current(ctx, telegramID)
	if err != nil {
		h.logger.Info("Command without session",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return nil, false
	}
	return sess, true
}

// requireRole is requireSession plus a role check.
func (h *Handlers) requireRole(ctx context.Context, b *bot.Bot, update *models.Update, roles ...model.Role) (*model.Session, bool) {
	sess, ok := h.requireSession(ctx, b, update)
	if !ok {
		return nil, false
	}
	if !sess.HasRole(roles...) {
		h.sendError(ctx, b, update.Message.Chat.ID, service.ErrForbidden)
		return nil, false
	}
	return sess, true
}

// sendError tells the user what went wrong in their language.
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	h.sendMessage(ctx, b, chatID, common.ErrorMessage(err), nil)
}

func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	if err := common.SendMessage(ctx, b, chatID, text, kb); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
