package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Proton-105/warung-bot/internal/domain"
)

func TestRecordCommand(t *testing.T) {
	before := testutil.ToFloat64(botCommandsTotal.WithLabelValues("checkout", "ok"))
	RecordCommand("checkout", "ok", 20*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(botCommandsTotal.WithLabelValues("checkout", "ok")))

	RecordCommand("", "", time.Millisecond)
	assert.GreaterOrEqual(t, testutil.ToFloat64(botCommandsTotal.WithLabelValues("unknown", "unknown")), 1.0)
}

func TestOrderRecorders(t *testing.T) {
	before := testutil.ToFloat64(orderTransitionsTotal.WithLabelValues("pending", "paid"))
	RecordOrderTransition(domain.OrderPending, domain.OrderPaid)
	assert.Equal(t, before+1, testutil.ToFloat64(orderTransitionsTotal.WithLabelValues("pending", "paid")))

	failed := testutil.ToFloat64(notificationsTotal.WithLabelValues("failed"))
	RecordNotification(false)
	assert.Equal(t, failed+1, testutil.ToFloat64(notificationsTotal.WithLabelValues("failed")))
}

func TestRegisterStateGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	sessions, carts := 2, 5
	RegisterStateGauges(reg, func() int { return sessions }, func() int { return carts })

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, family := range families {
		values[family.GetName()] = family.GetMetric()[0].GetGauge().GetValue()
	}
	assert.Equal(t, 2.0, values["active_sessions"])
	assert.Equal(t, 5.0, values["open_carts"])
}
