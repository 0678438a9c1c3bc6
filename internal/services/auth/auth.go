// Package services содержит логику бизнес-уровня для работы с учётными
// записями: вход, проверку токена сессии и смену пароля.
package services

import (
	"context"
	"errors"
	"fmt"

	jwtlib "github.com/magabrotheeeer/shipment-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/shipment-tracker/internal/lib/password"
	"github.com/magabrotheeeer/shipment-tracker/internal/models"
	"github.com/magabrotheeeer/shipment-tracker/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при любом провале проверки учётных
// данных. Неизвестная почта, снятая авторизация и неверный пароль
// неразличимы для вызывающей стороны.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Сообщения, возвращаемые клиенту при успешном входе.
const (
	MsgLoginOK        = "Inicio de sesión exitoso"
	MsgChangePassword = "Por favor, cambie su contraseña"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// GetAuthorizedUserByEmail возвращает авторизованного пользователя по почте.
	GetAuthorizedUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// UpdatePassword заменяет хэш пароля и помечает пароль сменённым.
	UpdatePassword(ctx context.Context, userUID, passwordHash string) error
}

// LoginResult содержит данные успешного входа.
type LoginResult struct {
	Token             string
	Role              string
	IsPasswordChanged bool
	Message           string
}

// AuthService отвечает за вход, валидацию JWT и смену пароля.
type AuthService struct {
	users    UserRepository
	jwtMaker jwtlib.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwtlib.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет пароль пользователя и генерирует токен сессии.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	user, err := s.users.GetAuthorizedUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UID, user.Role, user.IsAuthorized, user.IsPasswordChanged)
	if err != nil {
		return nil, err
	}

	message := MsgChangePassword
	if user.IsPasswordChanged {
		message = MsgLoginOK
	}
	return &LoginResult{
		Token:             token,
		Role:              user.Role,
		IsPasswordChanged: user.IsPasswordChanged,
		Message:           message,
	}, nil
}

// ValidateToken проверяет JWT и возвращает claims сессии.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwtlib.CustomClaims, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ChangePassword повторно проверяет текущий пароль и заменяет его новым.
// Хэш и флаг is_password_changed обновляются одной записью.
func (s *AuthService) ChangePassword(ctx context.Context, userUID, currentPassword, newPassword string) error {
	const op = "services.auth.ChangePassword"
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePassword(ctx, userUID, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
