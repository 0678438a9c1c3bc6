// Package models содержит доменные структуры, описывающие отправление,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Статусы отправления. Переходы между статусами не ограничены:
// авторизованный администратор может выставить любой статус из списка.
const (
	StatusPending   = "Pending"
	StatusInTransit = "In Transit"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

// ValidStatus сообщает, входит ли значение в перечень допустимых статусов.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Recipient описывает получателя отправления, хранится вместе с отправлением.
type Recipient struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Comment представляет запись в упорядоченном списке комментариев отправления.
// Комментарии не редактируются и не удаляются.
type Comment struct {
	ID        int64     `json:"id"`
	AuthorUID string    `json:"authorUid"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// Shipment представляет собой основную модель отправления,
// используемую в бизнес-логике и хранилище.
// SenderEmail и OfficeName — слабые ссылки, подставляются из
// соответствующих таблиц при чтении.
type Shipment struct {
	ID             int64     `json:"id"`
	TrackingNumber string    `json:"trackingNumber"`
	SenderUID      string    `json:"senderUid"`
	SenderEmail    string    `json:"senderEmail,omitempty"`
	Recipient      Recipient `json:"recipient"`
	Status         string    `json:"status"`
	OfficeUID      string    `json:"officeUid"`
	OfficeName     string    `json:"officeName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Comments       []Comment `json:"comments,omitempty"`
}

// DummyRecipient используется для приёма данных получателя из JSON-запроса.
type DummyRecipient struct {
	Name    string `json:"name" validate:"required"`    // Имя получателя
	Address string `json:"address" validate:"required"` // Адрес получателя
}

// DummyShipment используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Shipment.
type DummyShipment struct {
	Recipient DummyRecipient `json:"recipient" validate:"required"`   // Получатель
	Office    string         `json:"office" validate:"required,uuid"` // Идентификатор отделения
}

// DummyStatus используется для приёма нового статуса из JSON-запроса.
type DummyStatus struct {
	Status string `json:"status" validate:"required"`
}

// DummyComment используется для приёма текста комментария из JSON-запроса.
type DummyComment struct {
	Body string `json:"body" validate:"required"`
}

// StatusEvent публикуется в очередь при каждой смене статуса отправления.
type StatusEvent struct {
	ShipmentID     int64     `json:"shipment_id"`
	TrackingNumber string    `json:"tracking_number"`
	SenderEmail    string    `json:"sender_email"`
	OldStatus      string    `json:"old_status"`
	NewStatus      string    `json:"new_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
