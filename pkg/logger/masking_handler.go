package logger

import (
	"context"
	"log/slog"
	"strings"
)

const mask = "***"

// secretKeys are replaced wholesale. A key matches exactly or as a "_key" suffix.
var secretKeys = []string{
	"password",
	"token",
	"secret",
	"api_key",
	"authorization",
	"dsn",
}

// partialKeys keep their last four characters so operators can tell values apart.
var partialKeys = []string{
	"account_number",
}

// MaskingHandler wraps a slog.Handler and masks credentials and bank details before delegating.
type MaskingHandler struct {
	next slog.Handler
}

// NewMaskingHandler creates a handler that masks sensitive fields before passing records downstream.
func NewMaskingHandler(next slog.Handler) *MaskingHandler {
	return &MaskingHandler{next: next}
}

func (h *MaskingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// WithAttrs masks attrs bound through Logger.With as well.
func (h *MaskingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		masked = append(masked, maskAttr(attr))
	}
	return &MaskingHandler{next: h.next.WithAttrs(masked)}
}

func (h *MaskingHandler) WithGroup(name string) slog.Handler {
	return &MaskingHandler{next: h.next.WithGroup(name)}
}

func (h *MaskingHandler) Handle(ctx context.Context, record slog.Record) error {
	masked := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)

	record.Attrs(func(attr slog.Attr) bool {
		masked.AddAttrs(maskAttr(attr))
		return true
	})

	return h.next.Handle(ctx, masked)
}

func maskAttr(attr slog.Attr) slog.Attr {
	switch {
	case matchesKey(attr.Key, secretKeys):
		return slog.String(attr.Key, mask)
	case matchesKey(attr.Key, partialKeys):
		return slog.String(attr.Key, maskTail(attr.Value.String()))
	}

	if attr.Value.Kind() != slog.KindGroup {
		return attr
	}

	group := attr.Value.Group()
	out := make([]any, 0, len(group))
	for _, nested := range group {
		out = append(out, maskAttr(nested))
	}
	return slog.Group(attr.Key, out...)
}

func maskTail(value string) string {
	const visible = 4
	if len(value) <= visible {
		return mask
	}
	return mask + value[len(value)-visible:]
}

func matchesKey(key string, candidates []string) bool {
	lower := strings.ToLower(key)
	for _, candidate := range candidates {
		if lower == candidate || strings.HasSuffix(lower, "_"+candidate) {
			return true
		}
	}
	return false
}
