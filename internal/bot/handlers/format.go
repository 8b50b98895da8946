package handlers

import (
	"html"
	"strings"
	"time"

	"github.com/Proton-105/warung-bot/internal/domain"
)

// escapeHTML makes user supplied text safe inside HTML parse mode messages.
func escapeHTML(s string) string {
	return html.EscapeString(s)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

func statusLabel(status domain.OrderStatus) string {
	return strings.ToUpper(string(status))
}
