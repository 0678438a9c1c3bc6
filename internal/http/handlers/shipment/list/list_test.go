package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/shipment-tracker/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListAll(ctx context.Context, limit, offset int, search string) ([]*models.Shipment, error) {
	args := m.Called(ctx, limit, offset, search)
	if res := args.Get(0); res != nil {
		return res.([]*models.Shipment), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "список с параметрами по умолчанию",
			url:  "/shipments",
			setupMock: func(m *MockService) {
				shipments := []*models.Shipment{
					{ID: 2, TrackingNumber: "TNAAAAAAAA2"},
					{ID: 1, TrackingNumber: "TNAAAAAAAA1"},
				}
				m.On("ListAll", mock.Anything, 20, 0, "").Return(shipments, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"trackingNumber":"TNAAAAAAAA2"`,
		},
		{
			name: "пагинация и поиск из query",
			url:  "/shipments?limit=5&offset=10&search=Transit",
			setupMock: func(m *MockService) {
				m.On("ListAll", mock.Anything, 5, 10, "Transit").Return([]*models.Shipment{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "limit сверх максимума урезается",
			url:  "/shipments?limit=1000",
			setupMock: func(m *MockService) {
				m.On("ListAll", mock.Anything, 100, 0, "").Return([]*models.Shipment{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "некорректные параметры игнорируются",
			url:  "/shipments?limit=abc&offset=-5",
			setupMock: func(m *MockService) {
				m.On("ListAll", mock.Anything, 20, 0, "").Return([]*models.Shipment{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "ошибка сервиса",
			url:  "/shipments",
			setupMock: func(m *MockService) {
				m.On("ListAll", mock.Anything, 20, 0, "").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Error al obtener los envíos"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
