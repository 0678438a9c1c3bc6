package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	jwtlib "github.com/magabrotheeeer/shipment-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/shipment-tracker/internal/models"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*jwtlib.CustomClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwtlib.CustomClaims), args.Error(1)
}

func TestTokenMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		token          string
		setupMock      func(m *AuthServiceMock)
		expectedStatus int
		expectedBody   string
		expectNext     bool
	}{
		{
			name:           "missing token header",
			token:          "",
			setupMock:      func(_ *AuthServiceMock) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "No hay token, autorización denegada",
		},
		{
			name:  "invalid token",
			token: "bad-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "bad-token").
					Return(nil, errors.New("token is malformed")).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Token no válido",
		},
		{
			name:  "valid token puts claims into context",
			token: "good-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "good-token").
					Return(&jwtlib.CustomClaims{
						UserUID: "uid-1",
						Role:    models.RoleAdmin,
					}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(AuthServiceMock)
			tt.setupMock(svc)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, "uid-1", r.Context().Value(UserUID))
				assert.Equal(t, models.RoleAdmin, r.Context().Value(Role))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/shipments", nil)
			if tt.token != "" {
				req.Header.Set(TokenHeader, tt.token)
			}
			w := httptest.NewRecorder()

			TokenMiddleware(svc, logger)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}

			svc.AssertExpectations(t)
		})
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		role           any
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "admin passes",
			role:           models.RoleAdmin,
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "requester is denied",
			role:           models.RoleRequester,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing role is denied",
			role:           nil,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/shipments", nil)
			if tt.role != nil {
				req = req.WithContext(context.WithValue(req.Context(), Role, tt.role))
			}
			w := httptest.NewRecorder()

			AdminOnlyMiddleware(logger)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			if !tt.expectNext {
				assert.Contains(t, w.Body.String(), "Acceso denegado")
			}
		})
	}
}
