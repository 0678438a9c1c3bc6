package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/shipment-tracker/internal/models"
)

// CreateUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (uid, email, password_hash, role, is_authorized,
			      is_password_changed)
			  VALUES ($1, lower($2), $3, $4, $5, $6)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.UID, user.Email, user.PasswordHash, user.Role, user.IsAuthorized,
		user.IsPasswordChanged).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetAuthorizedUserByEmail возвращает пользователя по почте при условии,
// что вход ему разрешён. Отсутствие записи отдаётся как ErrNotFound,
// чтобы вызывающая сторона не различала "нет пользователя" и "не авторизован".
func (s *Storage) GetAuthorizedUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetAuthorizedUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, password_hash, role, is_authorized,
			      is_password_changed, created_at
			  FROM users
			  WHERE email = lower($1) AND is_authorized = TRUE`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, strings.TrimSpace(email))

	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash, &u.Role,
		&u.IsAuthorized, &u.IsPasswordChanged, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, password_hash, role, is_authorized,
			      is_password_changed, created_at
			  FROM users
			  WHERE uid = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userUID)

	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash, &u.Role,
		&u.IsAuthorized, &u.IsPasswordChanged, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdatePassword заменяет хэш пароля пользователя и помечает пароль сменённым.
// Обе колонки обновляются одним запросом, частичной записи не бывает.
func (s *Storage) UpdatePassword(ctx context.Context, userUID, passwordHash string) error {
	const op = "storage.UpdatePassword"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
		      SET password_hash = $1,
			      is_password_changed = TRUE
		      WHERE uid = $2`
	result, err := s.DB.ExecContext(ctx, query, passwordHash, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
