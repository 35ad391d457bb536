// Package notifier публикует доменные события в RabbitMQ.
package notifier

import (
	"context"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/gym-management/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// Notifier отправляет события зала во внешнюю шину.
type Notifier struct {
	ch *amqp.Channel
}

// New создает Notifier поверх открытого канала.
func New(ch *amqp.Channel) *Notifier {
	return &Notifier{ch: ch}
}

// SubscriptionCreated публикует событие об оформлении подписки.
func (n *Notifier) SubscriptionCreated(_ context.Context, sub models.Subscription) error {
	const op = "notifier.SubscriptionCreated"
	err := rabbitmq.PublishMessage(n.ch, rabbitmq.EventsExchange, rabbitmq.SubscriptionCreatedKey, sub)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
