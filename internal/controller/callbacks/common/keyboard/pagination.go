package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PaginationButtons builds a ◀ n/m ▶ row; nil when everything fits on one page.
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton
	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}
	buttons = append(buttons, Button(fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages), "noop"))
	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}
	return buttons
}

func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	if buttons := PaginationButtons(prefix, currentPage, totalPages); len(buttons) > 0 {
		b.Row(buttons...)
	}
	return b
}

// WeekPagination is the previous/next week row. prevData is empty when the
// previous week is not worth showing.
func WeekPagination(label, prevData, nextData string) []models.InlineKeyboardButton {
	var row []models.InlineKeyboardButton
	if prevData != "" {
		row = append(row, Button("◀️", prevData))
	}
	row = append(row, Button(label, "noop"))
	row = append(row, Button("▶️", nextData))
	return row
}

// Page returns the [start, end) bounds of page for total items.
func Page(total, page, perPage int) (start, end, pages int) {
	pages = (total + perPage - 1) / perPage
	if pages == 0 {
		return 0, 0, 0
	}
	page = max(0, min(page, pages-1))
	start = page * perPage
	end = min(start+perPage, total)
	return start, end, pages
}
