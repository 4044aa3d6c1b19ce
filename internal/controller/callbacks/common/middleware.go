package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/callbacktypes"
	"go.uber.org/zap"
)

// WithContext runs handler with a fresh HandlerContext and no login required.
func WithContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	handler(NewHandlerContext(ctx, b, callback, h))
}

// WithSession loads the caller's session first. Without one the user gets an
// alert pointing to /login and handler is not called.
func WithSession(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadSession(); err != nil {
		h.Logger.Info("Callback without session",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// HandleError logs a failed operation and tells the user why.
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Warn("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}
