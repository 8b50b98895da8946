package bot

import (
	"context"
	stdErrors "errors"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	errors "github.com/Proton-105/warung-bot/internal/errors"
)

// Sender is the subset of *telebot.Bot the gateway talks to.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
	Respond(c *telebot.Callback, resp ...*telebot.CallbackResponse) error
}

// Gateway sends replies and pushes through Telegram.
type Gateway struct {
	sender  Sender
	breaker *errors.CircuitBreaker
	log     *slog.Logger
}

// NewGateway wraps sender. A nil breaker leaves pushes unguarded.
func NewGateway(sender Sender, breaker *errors.CircuitBreaker, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}

	return &Gateway{sender: sender, breaker: breaker, log: log}
}

// SendText sends a text message to chatID.
func (g *Gateway) SendText(ctx context.Context, chatID int64, text string, opts ...any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := g.sender.Send(telebot.ChatID(chatID), text, opts...)
	return err
}

// SendPhoto sends the image at photoURL with a caption.
func (g *Gateway) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, opts ...any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	photo := &telebot.Photo{File: telebot.FromURL(photoURL), Caption: caption}
	_, err := g.sender.Send(telebot.ChatID(chatID), photo, opts...)
	return err
}

// AnswerCallback stops the button spinner, optionally showing text as a toast.
func (g *Gateway) AnswerCallback(ctx context.Context, callbackID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return g.sender.Respond(&telebot.Callback{ID: callbackID}, &telebot.CallbackResponse{Text: text})
}

// PushText sends an unsolicited message to a user. Pushes go through the circuit breaker;
// a user who blocked the bot fails the push without counting against Telegram's health.
func (g *Gateway) PushText(ctx context.Context, telegramID int64, text string, opts ...any) error {
	if g.breaker == nil {
		return g.SendText(ctx, telegramID, text, opts...)
	}

	var userErr error
	err := g.breaker.Call(func() error {
		sendErr := g.SendText(ctx, telegramID, text, opts...)
		if isRecipientError(sendErr) {
			userErr = sendErr
			return nil
		}
		return sendErr
	})
	if err != nil {
		return err
	}

	return userErr
}

func isRecipientError(err error) bool {
	return stdErrors.Is(err, telebot.ErrBlockedByUser) ||
		stdErrors.Is(err, telebot.ErrUserIsDeactivated) ||
		stdErrors.Is(err, telebot.ErrChatNotFound)
}
