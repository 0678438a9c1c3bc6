package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/shipment-tracker/internal/models"
	services "github.com/magabrotheeeer/shipment-tracker/internal/services/shipment"
	"github.com/magabrotheeeer/shipment-tracker/internal/storage/repository"
)

type ShipmentRepoMock struct {
	mock.Mock
}

func (m *ShipmentRepoMock) CreateShipment(ctx context.Context, shipment models.Shipment) (*models.Shipment, error) {
	args := m.Called(ctx, shipment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipment), args.Error(1)
}

func (m *ShipmentRepoMock) GetShipment(ctx context.Context, id int64) (*models.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipment), args.Error(1)
}

func (m *ShipmentRepoMock) ListAllShipments(ctx context.Context, limit, offset int, search string) ([]*models.Shipment, error) {
	args := m.Called(ctx, limit, offset, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Shipment), args.Error(1)
}

func (m *ShipmentRepoMock) UpdateShipmentStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *ShipmentRepoMock) AddComment(ctx context.Context, shipmentID int64, authorUID, body string) error {
	args := m.Called(ctx, shipmentID, authorUID, body)
	return args.Error(0)
}

func (m *ShipmentRepoMock) GetOffice(ctx context.Context, officeUID string) (*models.Office, error) {
	args := m.Called(ctx, officeUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Office), args.Error(1)
}

func (m *ShipmentRepoMock) ListOffices(ctx context.Context) ([]*models.Office, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Office), args.Error(1)
}

// noopCache всегда промахивается и молча принимает записи
type noopCache struct{}

func (noopCache) Get(_ context.Context, _ string, _ any) (bool, error) { return false, nil }
func (noopCache) Set(_ context.Context, _ string, _ any, _ time.Duration) error {
	return nil
}
func (noopCache) Invalidate(_ context.Context, _ string) error { return nil }

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) PublishStatusEvent(event models.StatusEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func newTestService(repo *ShipmentRepoMock, publisher services.StatusPublisher) *services.ShipmentService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return services.NewShipmentService(repo, noopCache{}, publisher, logger)
}

func TestShipmentService_Create(t *testing.T) {
	officeUID := "6f1d8f2a-0a3b-4c71-9c11-000000000001"
	trackingPattern := regexp.MustCompile(`^TN[A-Z0-9]{9}$`)

	repo := new(ShipmentRepoMock)
	repo.On("GetOffice", mock.Anything, officeUID).Return(&models.Office{
		UID:  officeUID,
		Name: "Oficina Central",
	}, nil).Once()
	repo.On("CreateShipment", mock.Anything, mock.MatchedBy(func(sh models.Shipment) bool {
		return trackingPattern.MatchString(sh.TrackingNumber) &&
			sh.Status == models.StatusPending &&
			sh.SenderUID == "sender-uid" &&
			sh.Recipient.Name == "Juan Pérez"
	})).Return(&models.Shipment{
		ID:             1,
		TrackingNumber: "TN123ABC456",
		SenderUID:      "sender-uid",
		Recipient:      models.Recipient{Name: "Juan Pérez", Address: "Calle Falsa 123"},
		Status:         models.StatusPending,
		OfficeUID:      officeUID,
	}, nil).Once()
	repo.On("GetShipment", mock.Anything, int64(1)).Return(&models.Shipment{
		ID:             1,
		TrackingNumber: "TN123ABC456",
		SenderUID:      "sender-uid",
		SenderEmail:    "sender@example.com",
		Recipient:      models.Recipient{Name: "Juan Pérez", Address: "Calle Falsa 123"},
		Status:         models.StatusPending,
		OfficeUID:      officeUID,
		OfficeName:     "Oficina Central",
	}, nil).Once()

	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), "sender-uid", models.DummyShipment{
		Recipient: models.DummyRecipient{Name: "Juan Pérez", Address: "Calle Falsa 123"},
		Office:    officeUID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, "Oficina Central", created.OfficeName)
	assert.Equal(t, "sender@example.com", created.SenderEmail)

	repo.AssertExpectations(t)
}

// mapCache хранит значения в памяти как JSON, как это делает redis-кеш.
type mapCache struct {
	entries map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, result any) (bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, result)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func TestShipmentService_GetByIDAfterCreate_ServesJoinedFields(t *testing.T) {
	officeUID := "6f1d8f2a-0a3b-4c71-9c11-000000000001"

	repo := new(ShipmentRepoMock)
	repo.On("GetOffice", mock.Anything, officeUID).Return(&models.Office{
		UID:  officeUID,
		Name: "Oficina Central",
	}, nil).Once()
	repo.On("CreateShipment", mock.Anything, mock.Anything).Return(&models.Shipment{
		ID:             5,
		TrackingNumber: "TN123ABC456",
		SenderUID:      "sender-uid",
		Status:         models.StatusPending,
		OfficeUID:      officeUID,
	}, nil).Once()
	// Единственное чтение из хранилища: последующий GetByID обслуживается кешем
	repo.On("GetShipment", mock.Anything, int64(5)).Return(&models.Shipment{
		ID:             5,
		TrackingNumber: "TN123ABC456",
		SenderUID:      "sender-uid",
		SenderEmail:    "sender@example.com",
		Status:         models.StatusPending,
		OfficeUID:      officeUID,
		OfficeName:     "Oficina Central",
	}, nil).Once()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := services.NewShipmentService(repo, newMapCache(), nil, logger)

	created, err := svc.Create(context.Background(), "sender-uid", models.DummyShipment{
		Recipient: models.DummyRecipient{Name: "Juan Pérez", Address: "Calle Falsa 123"},
		Office:    officeUID,
	})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "sender@example.com", got.SenderEmail)
	assert.Equal(t, "Oficina Central", got.OfficeName)

	repo.AssertExpectations(t)
}

func TestShipmentService_Create_UnknownOffice(t *testing.T) {
	repo := new(ShipmentRepoMock)
	repo.On("GetOffice", mock.Anything, "missing-office").
		Return(nil, repository.ErrNotFound).Once()

	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), "sender-uid", models.DummyShipment{
		Recipient: models.DummyRecipient{Name: "Juan Pérez", Address: "Calle Falsa 123"},
		Office:    "missing-office",
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, created)

	repo.AssertExpectations(t)
}

func TestShipmentService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		newStatus  string
		setupMocks func(r *ShipmentRepoMock, p *PublisherMock)
		wantErr    error
	}{
		{
			name:      "successful update publishes event",
			newStatus: models.StatusInTransit,
			setupMocks: func(r *ShipmentRepoMock, p *PublisherMock) {
				r.On("GetShipment", mock.Anything, int64(1)).Return(&models.Shipment{
					ID: 1, TrackingNumber: "TN123ABC456", Status: models.StatusPending,
					SenderEmail: "sender@example.com",
				}, nil).Once()
				r.On("UpdateShipmentStatus", mock.Anything, int64(1), models.StatusInTransit).
					Return(nil).Once()
				r.On("GetShipment", mock.Anything, int64(1)).Return(&models.Shipment{
					ID: 1, TrackingNumber: "TN123ABC456", Status: models.StatusInTransit,
					SenderEmail: "sender@example.com",
				}, nil).Once()
				p.On("PublishStatusEvent", mock.MatchedBy(func(e models.StatusEvent) bool {
					return e.OldStatus == models.StatusPending &&
						e.NewStatus == models.StatusInTransit &&
						e.SenderEmail == "sender@example.com"
				})).Return(nil).Once()
			},
		},
		{
			name:      "same status twice is accepted",
			newStatus: models.StatusPending,
			setupMocks: func(r *ShipmentRepoMock, p *PublisherMock) {
				r.On("GetShipment", mock.Anything, int64(1)).Return(&models.Shipment{
					ID: 1, Status: models.StatusPending,
				}, nil).Twice()
				r.On("UpdateShipmentStatus", mock.Anything, int64(1), models.StatusPending).
					Return(nil).Once()
				p.On("PublishStatusEvent", mock.Anything).Return(nil).Once()
			},
		},
		{
			name:       "status outside enum",
			newStatus:  "Problematic",
			setupMocks: func(_ *ShipmentRepoMock, _ *PublisherMock) {},
			wantErr:    services.ErrInvalidStatus,
		},
		{
			name:      "unknown shipment",
			newStatus: models.StatusDelivered,
			setupMocks: func(r *ShipmentRepoMock, _ *PublisherMock) {
				r.On("GetShipment", mock.Anything, int64(1)).
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(ShipmentRepoMock)
			publisher := new(PublisherMock)
			tt.setupMocks(repo, publisher)

			svc := newTestService(repo, publisher)

			updated, err := svc.UpdateStatus(context.Background(), 1, tt.newStatus)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, updated)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.newStatus, updated.Status)
			}

			repo.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}

func TestShipmentService_UpdateStatus_PublishFailureIsNotFatal(t *testing.T) {
	repo := new(ShipmentRepoMock)
	publisher := new(PublisherMock)

	repo.On("GetShipment", mock.Anything, int64(7)).Return(&models.Shipment{
		ID: 7, Status: models.StatusPending,
	}, nil).Twice()
	repo.On("UpdateShipmentStatus", mock.Anything, int64(7), models.StatusCancelled).
		Return(nil).Once()
	publisher.On("PublishStatusEvent", mock.Anything).
		Return(errors.New("broker unavailable")).Once()

	svc := newTestService(repo, publisher)

	updated, err := svc.UpdateStatus(context.Background(), 7, models.StatusCancelled)
	require.NoError(t, err)
	assert.NotNil(t, updated)

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestShipmentService_AddComment(t *testing.T) {
	repo := new(ShipmentRepoMock)

	repo.On("GetShipment", mock.Anything, int64(3)).Return(&models.Shipment{
		ID: 3, Status: models.StatusInTransit,
	}, nil).Once()
	repo.On("AddComment", mock.Anything, int64(3), "author-uid", "Paquete dañado en tránsito").
		Return(nil).Once()
	repo.On("GetShipment", mock.Anything, int64(3)).Return(&models.Shipment{
		ID: 3, Status: models.StatusInTransit,
		Comments: []models.Comment{
			{ID: 1, AuthorUID: "author-uid", Body: "Paquete dañado en tránsito"},
		},
	}, nil).Once()

	svc := newTestService(repo, nil)

	updated, err := svc.AddComment(context.Background(), 3, "author-uid", "Paquete dañado en tránsito")
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, "Paquete dañado en tránsito", updated.Comments[0].Body)

	repo.AssertExpectations(t)
}

func TestShipmentService_ListAll(t *testing.T) {
	repo := new(ShipmentRepoMock)
	repo.On("ListAllShipments", mock.Anything, 10, 0, "TN123").Return([]*models.Shipment{
		{ID: 1, TrackingNumber: "TN123ABC456"},
	}, nil).Once()

	svc := newTestService(repo, nil)

	got, err := svc.ListAll(context.Background(), 10, 0, "TN123")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	repo.AssertExpectations(t)
}
