package keyboard

import "github.com/go-telegram/bot/models"

// Builder assembles inline keyboards row by row.
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.InlineKeyboardButton, 0),
	}
}

// Row appends a row; empty rows are skipped.
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Grid lays buttons out perRow at a time.
func (b *Builder) Grid(perRow int, buttons ...models.InlineKeyboardButton) *Builder {
	for len(buttons) > 0 {
		n := min(perRow, len(buttons))
		b.Row(buttons[:n]...)
		buttons = buttons[n:]
	}
	return b
}

func (b *Builder) Len() int {
	return len(b.rows)
}

func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

func URLButton(text, url string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text: text,
		URL:  url,
	}
}

func (b *Builder) Build() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: b.rows,
	}
}
