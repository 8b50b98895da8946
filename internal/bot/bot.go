package bot

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/warung-bot/internal/bot/handlers"
	errors "github.com/Proton-105/warung-bot/internal/errors"
	"github.com/Proton-105/warung-bot/pkg/config"
)

// Bot wraps telebot.Bot with the gateway and the update dispatcher.
type Bot struct {
	telebot *telebot.Bot
	gateway *Gateway
	log     *slog.Logger
}

// New builds a telegram bot instance configured according to the application settings.
func New(cfg config.BotConfig, log *slog.Logger) (*Bot, error) {
	if log == nil {
		log = slog.Default()
	}

	settings := telebot.Settings{
		Token: cfg.Token,
		OnError: func(err error, c telebot.Context) {
			log.Error("telebot error", slog.Any("error", err))
		},
	}

	if cfg.Mode == "webhook" {
		port := cfg.WebhookPort
		if port == "" {
			port = "8443"
		}
		settings.Poller = &telebot.Webhook{
			Listen:   ":" + port,
			Endpoint: &telebot.WebhookEndpoint{PublicURL: cfg.WebhookURL},
		}
	} else {
		settings.Poller = &telebot.LongPoller{
			Timeout: cfg.Timeout,
		}
	}

	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	breakerSettings := errors.DefaultBreakerSettings
	breakerSettings.OnStateChange = func(from, to errors.State) {
		log.Warn("telegram push breaker changed state", slog.String("from", from.String()), slog.String("to", to.String()))
	}

	return &Bot{
		telebot: tb,
		gateway: NewGateway(tb, errors.NewCircuitBreaker(breakerSettings), log),
		log:     log,
	}, nil
}

// Messenger exposes the outbound side of the bot for handlers and notifiers.
func (b *Bot) Messenger() handlers.Messenger {
	return b.gateway
}

// Mount feeds text messages and button taps into router.
func (b *Bot) Mount(router *Router) {
	dispatcher := NewDispatcher(router, b.gateway, b.log)

	b.telebot.Handle(telebot.OnText, dispatcher.Dispatch)
	b.telebot.Handle(telebot.OnCallback, dispatcher.Dispatch)
}

// Start runs the telegram bot event loop. It blocks until Stop is called.
func (b *Bot) Start() {
	if b.telebot != nil {
		b.telebot.Start()
	}
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	if b.telebot == nil {
		return
	}

	b.log.Info("stopping telegram bot...")
	b.telebot.Stop()
}

// Telebot exposes the underlying telebot.Bot instance for integrations such as health checks.
func (b *Bot) Telebot() *telebot.Bot {
	return b.telebot
}
