package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

const (
	// Exchange — обменник событий отправлений.
	Exchange = "shipments"
	// StatusQueue — очередь событий смены статуса.
	StatusQueue = "shipments.status"
	// StatusRoutingKey — ключ маршрутизации событий смены статуса.
	StatusRoutingKey = "status"
)

// SetupChannel открывает канал, объявляет обменник и очередь статусов
// и привязывает её по ключу маршрутизации.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	err = ch.ExchangeDeclare(
		Exchange,
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
		StatusQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, StatusQueue, err)
	}

	err = ch.QueueBind(
		StatusQueue,
		StatusRoutingKey,
		Exchange,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, StatusQueue, StatusRoutingKey, err)
	}

	return ch, nil
}
