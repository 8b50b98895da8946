// Package session keeps per-chat wizard state for multi-step admin forms.
//
// State lives in process memory only; a restart drops every open form.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	validator "github.com/go-playground/validator/v10"
)

var (
	// ErrNoSession is returned by Advance when the chat has no open form.
	ErrNoSession = errors.New("session: no active session")
	// ErrUnknownKind is returned by Begin for KindNone or an undefined kind.
	ErrUnknownKind = errors.New("session: unknown wizard kind")
)

type entry struct {
	step      step
	updatedAt time.Time
}

// Engine owns the wizard state of every chat. All methods are safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	sessions map[int64]*entry
	validate *validator.Validate
	now      func() time.Time
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock overrides time.Now, used by tests of expiry.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine with no sessions.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		sessions: make(map[int64]*entry),
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Begin starts kind for chatID at its first step and returns the first prompt.
// An open form of the same chat is discarded; replaced reports whether that happened.
func (e *Engine) Begin(chatID int64, kind Kind) (prompt Prompt, replaced bool, err error) {
	first, text, ok := firstStep(kind)
	if !ok {
		return Prompt{}, false, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	_, replaced = e.sessions[chatID]
	e.sessions[chatID] = &entry{step: first, updatedAt: e.now()}

	return Prompt{Text: text}, replaced, nil
}

// Advance feeds one message to the chat's form. Complete removes the session.
// Rejected leaves it on the same step.
func (e *Engine) Advance(chatID int64, text string) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current, ok := e.sessions[chatID]
	if !ok {
		return nil, ErrNoSession
	}

	next, outcome := current.step.advance(e.validate, text)
	switch outcome.(type) {
	case Complete:
		delete(e.sessions, chatID)
	case Prompt:
		current.step = next
		current.updatedAt = e.now()
	case Rejected:
		current.updatedAt = e.now()
	}

	return outcome, nil
}

// End drops the chat's form. It reports whether one was open.
func (e *Engine) End(chatID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok := e.sessions[chatID]
	delete(e.sessions, chatID)
	return ok
}

// Current returns the kind of the chat's open form, or KindNone and false.
func (e *Engine) Current(chatID int64) (Kind, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current, ok := e.sessions[chatID]
	if !ok {
		return KindNone, false
	}
	return current.step.kind(), true
}

// Count returns the number of open forms.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.sessions)
}

// Expire drops forms idle for longer than ttl and returns the chats affected.
func (e *Engine) Expire(ttl time.Duration) []int64 {
	if ttl <= 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := e.now().Add(-ttl)
	var expired []int64
	for chatID, current := range e.sessions {
		if current.updatedAt.Before(cutoff) {
			delete(e.sessions, chatID)
			expired = append(expired, chatID)
		}
	}
	return expired
}
