// Package services содержит бизнес-логику жизненного цикла отправлений,
// включая кеширование чтения и публикацию событий смены статуса.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/shipment-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/shipment-tracker/internal/lib/tracking"
	"github.com/magabrotheeeer/shipment-tracker/internal/models"
)

// ErrInvalidStatus возвращается при попытке выставить статус вне перечня.
var ErrInvalidStatus = errors.New("invalid status")

// ShipmentRepository определяет методы для работы с отправлениями в хранилище.
type ShipmentRepository interface {
	// CreateShipment добавляет новое отправление и возвращает его с ID и метками времени.
	CreateShipment(ctx context.Context, shipment models.Shipment) (*models.Shipment, error)
	// GetShipment возвращает отправление по ID с подставленными слабыми ссылками.
	GetShipment(ctx context.Context, id int64) (*models.Shipment, error)
	// ListAllShipments возвращает все отправления с пагинацией и поиском.
	ListAllShipments(ctx context.Context, limit, offset int, search string) ([]*models.Shipment, error)
	// UpdateShipmentStatus перезаписывает статус отправления.
	UpdateShipmentStatus(ctx context.Context, id int64, status string) error
	// AddComment добавляет комментарий в конец списка.
	AddComment(ctx context.Context, shipmentID int64, authorUID, body string) error
	// GetOffice возвращает отделение по UID.
	GetOffice(ctx context.Context, officeUID string) (*models.Office, error)
	// ListOffices возвращает все отделения.
	ListOffices(ctx context.Context) ([]*models.Office, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// StatusPublisher публикует события смены статуса. Публикация выполняется
// по возможности: её отказ не откатывает уже записанное обновление.
type StatusPublisher interface {
	PublishStatusEvent(event models.StatusEvent) error
}

// ShipmentService реализует бизнес-логику работы с отправлениями.
type ShipmentService struct {
	repo      ShipmentRepository
	cache     Cache
	publisher StatusPublisher
	log       *slog.Logger
}

// NewShipmentService создает новый экземпляр ShipmentService.
// publisher может быть nil, тогда события смены статуса не публикуются.
func NewShipmentService(repo ShipmentRepository, cache Cache, publisher StatusPublisher, log *slog.Logger) *ShipmentService {
	return &ShipmentService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// Create создает новое отправление со статусом Pending и свежим номером
// отслеживания. Номер не проверяется на коллизии: совпадение упрётся в
// уникальный индекс и вернётся ошибкой хранилища.
func (s *ShipmentService) Create(ctx context.Context, senderUID string, req models.DummyShipment) (*models.Shipment, error) {
	office, err := s.repo.GetOffice(ctx, req.Office)
	if err != nil {
		return nil, err
	}

	shipment := models.Shipment{
		TrackingNumber: tracking.NewNumber(),
		SenderUID:      senderUID,
		Recipient: models.Recipient{
			Name:    req.Recipient.Name,
			Address: req.Recipient.Address,
		},
		Status:    models.StatusPending,
		OfficeUID: office.UID,
	}

	inserted, err := s.repo.CreateShipment(ctx, shipment)
	if err != nil {
		return nil, err
	}

	// Перечитываем созданную запись, чтобы ответ и кеш содержали
	// подставленные почту отправителя и название отделения.
	created, err := s.repo.GetShipment(ctx, inserted.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("created new shipment",
		slog.Int64("id", created.ID),
		slog.String("tracking_number", created.TrackingNumber))

	cacheKey := fmt.Sprintf("shipment:%d", created.ID)
	if err := s.cache.Set(ctx, cacheKey, created, time.Hour); err != nil {
		s.log.Warn("failed to cache shipment", slog.String("key", cacheKey), sl.Err(err))
	}

	return created, nil
}

// GetByID возвращает отправление по ID, используя кеш или репозиторий.
func (s *ShipmentService) GetByID(ctx context.Context, id int64) (*models.Shipment, error) {
	var result *models.Shipment
	cacheKey := fmt.Sprintf("shipment:%d", id)
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetShipment(ctx, id)
	if err != nil {
		return nil, err
	}

	if result != nil {
		if err := s.cache.Set(ctx, cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	return result, nil
}

// ListAll возвращает все отправления с пагинацией и необязательным поиском
// по перечисленным полям.
func (s *ShipmentService) ListAll(ctx context.Context, limit, offset int, search string) ([]*models.Shipment, error) {
	return s.repo.ListAllShipments(ctx, limit, offset, search)
}

// UpdateStatus перезаписывает статус отправления. Проверяется только
// принадлежность нового статуса перечню, граф переходов не ограничен.
func (s *ShipmentService) UpdateStatus(ctx context.Context, id int64, newStatus string) (*models.Shipment, error) {
	if !models.ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.GetShipment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateShipmentStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetShipment(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("shipment:%d", id)
	if err := s.cache.Set(ctx, cacheKey, updated, time.Hour); err != nil {
		s.log.Warn("failed to cache shipment", slog.String("key", cacheKey), sl.Err(err))
	}

	if s.publisher != nil {
		event := models.StatusEvent{
			ShipmentID:     updated.ID,
			TrackingNumber: updated.TrackingNumber,
			SenderEmail:    updated.SenderEmail,
			OldStatus:      current.Status,
			NewStatus:      updated.Status,
			OccurredAt:     time.Now().UTC(),
		}
		if err := s.publisher.PublishStatusEvent(event); err != nil {
			s.log.Warn("failed to publish status event", slog.Int64("id", id), sl.Err(err))
		}
	}

	return updated, nil
}

// AddComment добавляет комментарий к отправлению и возвращает его
// обновлённую версию.
func (s *ShipmentService) AddComment(ctx context.Context, id int64, authorUID, body string) (*models.Shipment, error) {
	if _, err := s.repo.GetShipment(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.AddComment(ctx, id, authorUID, body); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetShipment(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("shipment:%d", id)
	if err := s.cache.Set(ctx, cacheKey, updated, time.Hour); err != nil {
		s.log.Warn("failed to cache shipment", slog.String("key", cacheKey), sl.Err(err))
	}
	return updated, nil
}

// ListOffices возвращает все отделения для выбора при создании отправления.
func (s *ShipmentService) ListOffices(ctx context.Context) ([]*models.Office, error) {
	return s.repo.ListOffices(ctx)
}
