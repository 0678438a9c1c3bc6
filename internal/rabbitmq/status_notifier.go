package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/shipment-tracker/internal/models"
)

// StatusNotifier публикует события смены статуса отправления в обменник.
type StatusNotifier struct {
	ch *amqp.Channel
}

// NewStatusNotifier создает новый StatusNotifier поверх открытого канала.
func NewStatusNotifier(ch *amqp.Channel) *StatusNotifier {
	return &StatusNotifier{ch: ch}
}

// PublishStatusEvent отправляет событие в очередь статусов.
func (n *StatusNotifier) PublishStatusEvent(event models.StatusEvent) error {
	return PublishMessage(n.ch, Exchange, StatusRoutingKey, event)
}
