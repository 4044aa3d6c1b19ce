package common

import (
	"bytes"
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pluggkompis/pluggkompis_bot/internal/controller/callbacks/callbacktypes"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
)

// HandlerContext bundles what a callback handler works with.
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	Session    *model.Session
	TelegramID int64
	ChatID     int64
}

func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// LoadSession loads the caller's login session into the context.
func (hc *HandlerContext) LoadSession() error {
	sess, err := hc.Handler.Sessions.Current(hc.Ctx, hc.TelegramID)
	if err != nil {
		return err
	}
	hc.Session = sess
	return nil
}

func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage replaces the text and keyboard of the callback's message. Photo
// messages cannot be edited to text, so those are replaced by a new message.
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}
	if len(hc.Message.Photo) > 0 {
		_ = hc.DeleteMessage()
		return hc.SendMessage(text, keyboard)
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, &bot.EditMessageTextParams{
		ChatID:      hc.ChatID,
		MessageID:   hc.Message.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
	if IsMessageNotModifiedError(err) {
		return nil
	}
	return err
}

func (hc *HandlerContext) DeleteMessage() error {
	if hc.Message == nil {
		return ErrNoMessage
	}
	_, err := hc.Bot.DeleteMessage(hc.Ctx, &bot.DeleteMessageParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
	})
	return err
}

func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	return SendMessage(hc.Ctx, hc.Bot, hc.ChatID, text, keyboard)
}

// SendPhoto sends a PNG with caption and keyboard.
func (hc *HandlerContext) SendPhoto(png []byte, caption string, keyboard *models.InlineKeyboardMarkup) error {
	return SendPhoto(hc.Ctx, hc.Bot, hc.ChatID, png, caption, keyboard)
}

func (hc *HandlerContext) ClearState() {
	hc.Handler.StateManager.ClearState(hc.TelegramID)
}

func (hc *HandlerContext) SetState(state callbacktypes.UserState) {
	hc.Handler.StateManager.SetState(hc.TelegramID, state)
}

func (hc *HandlerContext) SetData(key string, value any) {
	hc.Handler.StateManager.SetData(hc.TelegramID, key, value)
}

func (hc *HandlerContext) GetString(key string) (string, bool) {
	return hc.Handler.StateManager.GetString(hc.TelegramID, key)
}

// SendMessage sends an HTML message to chatID.
func SendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) error {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	_, err := b.SendMessage(ctx, params)
	return err
}

func SendPhoto(ctx context.Context, b *bot.Bot, chatID int64, png []byte, caption string, keyboard *models.InlineKeyboardMarkup) error {
	params := &bot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(png)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	_, err := b.SendPhoto(ctx, params)
	return err
}

// SendDocument sends a file such as the hour report PDF.
func SendDocument(ctx context.Context, b *bot.Bot, chatID int64, filename string, data []byte, caption string) error {
	_, err := b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(data)},
		Caption:  caption,
	})
	return err
}
