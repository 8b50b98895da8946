package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TaskTypeCustomerNotification = "notify:customer"

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// DefaultQueues weights the queues the worker consumes.
var DefaultQueues = map[string]int{
	QueueCritical: 6,
	QueueDefault:  3,
	QueueLow:      1,
}

type CustomerNotificationPayload struct {
	OrderID    int64  `json:"order_id"`
	TelegramID int64  `json:"telegram_id"`
	Text       string `json:"text"`
}

// NewCustomerNotificationTask builds a push task. Notifications are best effort and never retried.
func NewCustomerNotificationTask(p CustomerNotificationPayload) (*asynq.Task, error) {
	if p.TelegramID == 0 {
		return nil, fmt.Errorf("customer notification for order %d: missing telegram id", p.OrderID)
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskTypeCustomerNotification, payload, asynq.Queue(QueueDefault), asynq.MaxRetry(0)), nil
}
