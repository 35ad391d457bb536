package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

const (
	// EventsExchange — exchange доменных событий зала.
	EventsExchange = "gym.events"
	// SubscriptionCreatedKey — ключ маршрутизации события оформления подписки.
	SubscriptionCreatedKey = "subscription.created"
	// SubscriptionCreatedQueue — очередь событий оформления подписки.
	SubscriptionCreatedQueue = "gym.subscription.created"
)

// SetupChannel открывает канал и объявляет exchange, очередь и привязку
// для событий оформления подписки.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.ExchangeDeclare(
		EventsExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	_, err = ch.QueueDeclare(
		SubscriptionCreatedQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.QueueBind(SubscriptionCreatedQueue, SubscriptionCreatedKey, EventsExchange, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ch, nil
}
