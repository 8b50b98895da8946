package handlers

import (
	"context"

	"github.com/Proton-105/warung-bot/internal/bot/keyboard"
	"github.com/Proton-105/warung-bot/internal/user"
)

// EventKind classifies an inbound update.
type EventKind int

const (
	EventText EventKind = iota + 1
	EventCommand
	EventCallback
)

func (k EventKind) String() string {
	switch k {
	case EventText:
		return "text"
	case EventCommand:
		return "command"
	case EventCallback:
		return "callback"
	default:
		return "unknown"
	}
}

// Event is one inbound chat update, independent of the transport.
type Event struct {
	// ID is the transport update id, used for de-duplication.
	ID       int64
	Kind     EventKind
	SenderID int64
	ChatID   int64
	Sender   user.Profile

	// Text is the raw message text for text and command events.
	Text string
	// Command is the bare command name, e.g. "/start".
	Command string

	CallbackID string
	// Data is the raw callback payload; Callback is its decoded form.
	Data     string
	Callback keyboard.Callback

	answered bool
}

// Answered reports whether a handler already answered the callback query.
func (e *Event) Answered() bool {
	return e.answered
}

// Action is a low-cardinality label for logs and metrics.
func (e *Event) Action() string {
	switch e.Kind {
	case EventCommand:
		return e.Command
	case EventCallback:
		return e.Callback.Kind.String()
	case EventText:
		return "text"
	default:
		return "unknown"
	}
}

// Handler processes one event.
type Handler func(ctx context.Context, ev *Event) error

// Middleware wraps handlers with additional behavior.
type Middleware func(Handler) Handler

// Messenger is the outbound side of the chat transport. Options follow telebot's
// variadic send options (*telebot.ReplyMarkup, telebot.ParseMode).
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, opts ...any) error
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, opts ...any) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
	PushText(ctx context.Context, telegramID int64, text string, opts ...any) error
}

// Answer acknowledges ev's callback query through m and marks it answered.
func Answer(ctx context.Context, m Messenger, ev *Event, text string) error {
	ev.answered = true
	return m.AnswerCallback(ctx, ev.CallbackID, text)
}
