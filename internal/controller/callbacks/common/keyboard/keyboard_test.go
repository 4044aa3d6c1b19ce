package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationButtons(t *testing.T) {
	assert.Nil(t, PaginationButtons("p:", 0, 1))

	row := PaginationButtons("p:", 0, 3)
	assert.Len(t, row, 2)
	assert.Equal(t, "p:1", row[1].CallbackData)

	row = PaginationButtons("p:", 1, 3)
	assert.Len(t, row, 3)
	assert.Equal(t, "p:0", row[0].CallbackData)
}

func TestGrid(t *testing.T) {
	b := NewBuilder().Grid(2, Button("a", "a"), Button("b", "b"), Button("c", "c"))
	kb := b.Build()
	assert.Len(t, kb.InlineKeyboard, 2)
	assert.Len(t, kb.InlineKeyboard[1], 1)
}

func TestPage(t *testing.T) {
	start, end, pages := Page(25, 2, 10)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)
	assert.Equal(t, 3, pages)

	start, end, pages = Page(0, 0, 10)
	assert.Zero(t, start+end+pages)

	start, _, _ = Page(5, 9, 10)
	assert.Equal(t, 0, start)
}
