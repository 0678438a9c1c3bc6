package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/shipment-tracker/internal/models"
)

// CreateOffice сохраняет новое отделение и возвращает его UID.
func (s *Storage) CreateOffice(ctx context.Context, office models.Office) (string, error) {
	const op = "storage.CreateOffice"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO offices (uid, name, address)
			  VALUES ($1, $2, $3)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		office.UID, office.Name, office.Address).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetOffice возвращает отделение по его UID.
func (s *Storage) GetOffice(ctx context.Context, officeUID string) (*models.Office, error) {
	const op = "storage.GetOffice"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, address
			  FROM offices
			  WHERE uid = $1`
	o := &models.Office{}
	row := s.DB.QueryRowContext(ctx, query, officeUID)

	if err := row.Scan(&o.UID, &o.Name, &o.Address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

// ListOffices возвращает все отделения, упорядоченные по названию.
func (s *Storage) ListOffices(ctx context.Context) ([]*models.Office, error) {
	const op = "storage.ListOffices"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, address
			  FROM offices
			  ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Office
	for rows.Next() {
		var o models.Office
		if err = rows.Scan(&o.UID, &o.Name, &o.Address); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
