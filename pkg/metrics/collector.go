package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Proton-105/warung-bot/internal/domain"
)

var (
	botCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Total number of bot updates handled labeled by action and status",
		},
		[]string{"action", "status"},
	)
	commandDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "command_duration_seconds",
			Help:    "Duration of bot update handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)
	orderTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_transitions_total",
			Help: "Total number of applied order status transitions",
		},
		[]string{"from", "to"},
	)
	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_notifications_total",
			Help: "Customer status notifications by result",
		},
		[]string{"result"},
	)
	rateLimitChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratelimit_checks_total",
			Help: "Rate limit checks by backend and result",
		},
		[]string{"backend", "result"},
	)
	rateLimitFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratelimit_fallbacks_total",
			Help: "Checks served by the in-memory limiter after a Redis failure",
		},
	)
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors split by code and severity",
		},
		[]string{"code", "severity"},
	)
)

// RecordCommand increments command counters and records duration.
func RecordCommand(action, status string, duration time.Duration) {
	if action == "" {
		action = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	botCommandsTotal.WithLabelValues(action, status).Inc()
	commandDurationSeconds.WithLabelValues(action).Observe(duration.Seconds())
}

// RecordOrderTransition tracks applied order status changes.
func RecordOrderTransition(from, to domain.OrderStatus) {
	orderTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
}

// RecordNotification counts delivered and failed customer notifications.
func RecordNotification(delivered bool) {
	result := "delivered"
	if !delivered {
		result = "failed"
	}
	notificationsTotal.WithLabelValues(result).Inc()
}

// RecordRateLimitCheck counts one limiter decision.
func RecordRateLimitCheck(backend string, allowed bool) {
	result := "allowed"
	if !allowed {
		result = "rejected"
	}
	rateLimitChecksTotal.WithLabelValues(backend, result).Inc()
}

// RecordRateLimitFallback counts a Redis limiter failure.
func RecordRateLimitFallback() {
	rateLimitFallbacksTotal.Inc()
}

// RecordError increments error counters with metadata.
func RecordError(code, severity string) {
	if code == "" {
		code = "unknown"
	}
	if severity == "" {
		severity = "unknown"
	}

	errorsTotal.WithLabelValues(code, severity).Inc()
}

// RegisterStateGauges exposes the in-process session and cart counts.
// It must be called once; a second call panics on duplicate registration.
func RegisterStateGauges(reg prometheus.Registerer, sessions, carts func() int) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "active_sessions",
		Help: "Chats currently filling out a form",
	}, func() float64 { return float64(sessions()) })
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "open_carts",
		Help: "Users holding a non-empty cart",
	}, func() float64 { return float64(carts()) })
}
