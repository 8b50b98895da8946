package keyboard

import (
	"fmt"
	"strconv"
)

// PaginationButtons returns up to three inline buttons (prev, current page, next)
// whose callbacks re-open the list of kind at the target page.
func PaginationButtons(kind CallbackKind, page, totalPages int) []InlineButton {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	buttons := make([]InlineButton, 0, 3)

	if page > 1 {
		buttons = append(buttons, InlineButton{
			Text:   "◀️ Prev",
			Unique: kind.String(),
			Data:   strconv.Itoa(page - 1),
		})
	}

	buttons = append(buttons, InlineButton{
		Text:   fmt.Sprintf("Page %d/%d", page, totalPages),
		Unique: kind.String(),
		Data:   strconv.Itoa(page),
	})

	if page < totalPages {
		buttons = append(buttons, InlineButton{
			Text:   "Next ▶️",
			Unique: kind.String(),
			Data:   strconv.Itoa(page + 1),
		})
	}

	return buttons
}

// TotalPages returns how many pages of size perPage hold n items, at least one.
func TotalPages(n, perPage int) int {
	if perPage <= 0 || n <= 0 {
		return 1
	}
	return (n + perPage - 1) / perPage
}
