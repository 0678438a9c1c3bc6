// Package services содержит сервис рассылки уведомлений о смене статуса
// отправления. Получает события из очереди и отправляет письмо отправителю.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/shipment-tracker/internal/lib/smtp"
	"github.com/magabrotheeeer/shipment-tracker/internal/models"
)

// NotifierService отправляет письма о смене статуса отправления.
type NotifierService struct {
	log       *slog.Logger
	transport smtp.TransportInterface
}

// NewNotifierService создает новый экземпляр NotifierService.
func NewNotifierService(log *slog.Logger, transport smtp.TransportInterface) *NotifierService {
	return &NotifierService{
		log:       log,
		transport: transport,
	}
}

// SendStatusChanged обрабатывает событие из очереди статусов и отправляет
// письмо отправителю. Используется как обработчик потребителя RabbitMQ.
func (s *NotifierService) SendStatusChanged(body []byte) error {
	var event models.StatusEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("error unmarshalling message: %w", err)
	}
	if event.SenderEmail == "" {
		s.log.Warn("status event without sender email, skipping",
			slog.Int64("shipment_id", event.ShipmentID))
		return nil
	}

	subject := fmt.Sprintf("Actualización de su envío %s", event.TrackingNumber)
	bodyText := fmt.Sprintf(
		"Su envío %s cambió de estado: %s -> %s.",
		event.TrackingNumber, event.OldStatus, event.NewStatus)

	if err := s.transport.Send(event.SenderEmail, subject, bodyText); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	s.log.Info("status notification sent",
		slog.String("tracking_number", event.TrackingNumber),
		slog.String("to", event.SenderEmail))
	return nil
}
