package bot

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/Proton-105/warung-bot/internal/bot/handlers"
	"github.com/Proton-105/warung-bot/internal/bot/keyboard"
	"github.com/Proton-105/warung-bot/internal/session"
)

// SessionLookup reports whether a chat has a form in progress.
type SessionLookup interface {
	Current(chatID int64) (session.Kind, bool)
}

// Router dispatches commands, callbacks, and session text.
type Router struct {
	mu          sync.RWMutex
	commands    map[string]handlers.Handler
	callbacks   map[keyboard.CallbackKind]handlers.Handler
	sessionText handlers.Handler
	sessions    SessionLookup
	middlewares []handlers.Middleware
	log         *slog.Logger
}

// NewRouter builds a Router with empty registries.
func NewRouter(sessions SessionLookup, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}

	return &Router{
		commands:    make(map[string]handlers.Handler),
		callbacks:   make(map[keyboard.CallbackKind]handlers.Handler),
		sessions:    sessions,
		middlewares: make([]handlers.Middleware, 0),
		log:         log,
	}
}

// RegisterCommand registers a handler for a bot command.
func (r *Router) RegisterCommand(cmd string, h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd] = h
}

// RegisterCallback registers a handler for a decoded callback kind.
func (r *Router) RegisterCallback(kind keyboard.CallbackKind, h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks[kind] = h
}

// SetSessionHandler sets the handler for free text in chats with an active form.
func (r *Router) SetSessionHandler(h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessionText = h
}

// Use appends a middleware to the chain.
func (r *Router) Use(mw handlers.Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = append(r.middlewares, mw)
}

// Route classifies ev and runs the matching handler through the middleware chain.
// Events that match nothing are dropped and Route returns nil.
func (r *Router) Route(ctx context.Context, ev *handlers.Event) error {
	if ev == nil {
		return nil
	}

	handler := r.resolve(ev)
	if handler == nil {
		r.log.Debug("update dropped",
			slog.String("kind", ev.Kind.String()),
			slog.Int64("chat_id", ev.ChatID),
		)
		return nil
	}

	return r.applyMiddlewares(handler)(ctx, ev)
}

// resolve fills in the command or decoded callback on ev and returns its handler.
// A recognized command wins over an active form so /cancel and /start always work.
func (r *Router) resolve(ev *handlers.Event) handlers.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch ev.Kind {
	case handlers.EventCallback:
		callback, ok := keyboard.ParseCallback(ev.Data)
		if !ok {
			return nil
		}
		ev.Callback = callback
		return r.callbacks[callback.Kind]

	case handlers.EventText, handlers.EventCommand:
		if name, ok := commandName(ev.Text); ok {
			if handler, found := r.commands[name]; found {
				ev.Kind = handlers.EventCommand
				ev.Command = name
				return handler
			}
		}

		ev.Kind = handlers.EventText
		ev.Command = ""
		if r.sessions == nil || r.sessionText == nil {
			return nil
		}
		if _, active := r.sessions.Current(ev.ChatID); !active {
			return nil
		}
		return r.sessionText
	}

	return nil
}

// commandName extracts "/cmd" from "/cmd@botname args".
func commandName(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}

	name, _, _ := strings.Cut(text, " ")
	name, _, _ = strings.Cut(name, "@")
	if len(name) < 2 {
		return "", false
	}

	return strings.ToLower(name), true
}

// applyMiddlewares wraps the handler with all registered middlewares.
func (r *Router) applyMiddlewares(h handlers.Handler) handlers.Handler {
	middlewares := r.middlewaresSnapshot()
	wrapped := h
	for i := len(middlewares) - 1; i >= 0; i-- {
		if next := middlewares[i](wrapped); next != nil {
			wrapped = next
		}
	}

	return wrapped
}

func (r *Router) middlewaresSnapshot() []handlers.Middleware {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.middlewares) == 0 {
		return nil
	}

	snapshot := make([]handlers.Middleware, len(r.middlewares))
	copy(snapshot, r.middlewares)
	return snapshot
}
