package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/shipment-tracker/internal/models"
)

// CreateShipment сохраняет новое отправление и возвращает его с
// выставленными базой идентификатором и временными метками.
// При совпадении номера отслеживания с уже существующим вставка
// завершается ошибкой уникального индекса.
func (s *Storage) CreateShipment(ctx context.Context, shipment models.Shipment) (*models.Shipment, error) {
	const op = "storage.CreateShipment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO shipments (tracking_number, sender_uid, recipient_name,
			      recipient_address, status, office_uid)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at, updated_at;`
	if err := s.DB.QueryRowContext(ctx, query,
		shipment.TrackingNumber, shipment.SenderUID, shipment.Recipient.Name,
		shipment.Recipient.Address, shipment.Status, shipment.OfficeUID,
	).Scan(&shipment.ID, &shipment.CreatedAt, &shipment.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &shipment, nil
}

// GetShipment возвращает отправление по идентификатору с подставленными
// почтой отправителя и названием отделения, включая список комментариев.
func (s *Storage) GetShipment(ctx context.Context, id int64) (*models.Shipment, error) {
	const op = "storage.GetShipment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.tracking_number, s.sender_uid, u.email,
			      s.recipient_name, s.recipient_address, s.status,
			      s.office_uid, o.name, s.created_at, s.updated_at
			  FROM shipments s
			  JOIN users u ON u.uid = s.sender_uid
			  JOIN offices o ON o.uid = s.office_uid
			  WHERE s.id = $1`
	sh := &models.Shipment{}
	row := s.DB.QueryRowContext(ctx, query, id)

	if err := row.Scan(&sh.ID, &sh.TrackingNumber, &sh.SenderUID, &sh.SenderEmail,
		&sh.Recipient.Name, &sh.Recipient.Address, &sh.Status,
		&sh.OfficeUID, &sh.OfficeName, &sh.CreatedAt, &sh.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	comments, err := s.ListComments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sh.Comments = comments
	return sh, nil
}

// ListAllShipments возвращает все отправления с пагинацией. Непустой search
// сопоставляется только с перечисленными полями: номером отслеживания,
// именем и адресом получателя и статусом.
func (s *Storage) ListAllShipments(ctx context.Context, limit, offset int, search string) ([]*models.Shipment, error) {
	const op = "storage.ListAllShipments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.tracking_number, s.sender_uid, u.email,
			      s.recipient_name, s.recipient_address, s.status,
			      s.office_uid, o.name, s.created_at, s.updated_at
			  FROM shipments s
			  JOIN users u ON u.uid = s.sender_uid
			  JOIN offices o ON o.uid = s.office_uid
			  WHERE ($3 = ''
			      OR s.tracking_number ILIKE '%' || $3 || '%'
			      OR s.recipient_name ILIKE '%' || $3 || '%'
			      OR s.recipient_address ILIKE '%' || $3 || '%'
			      OR s.status ILIKE '%' || $3 || '%')
			  ORDER BY s.created_at DESC, s.id DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset, search)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Shipment
	for rows.Next() {
		var sh models.Shipment
		if err = rows.Scan(&sh.ID, &sh.TrackingNumber, &sh.SenderUID, &sh.SenderEmail,
			&sh.Recipient.Name, &sh.Recipient.Address, &sh.Status,
			&sh.OfficeUID, &sh.OfficeName, &sh.CreatedAt, &sh.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sh)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateShipmentStatus безусловно перезаписывает статус отправления
// и обновляет метку последнего изменения.
func (s *Storage) UpdateShipmentStatus(ctx context.Context, id int64, status string) error {
	const op = "storage.UpdateShipmentStatus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE shipments
		      SET status = $1,
			      updated_at = now()
		      WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, id)
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

// AddComment добавляет комментарий в конец списка комментариев отправления.
func (s *Storage) AddComment(ctx context.Context, shipmentID int64, authorUID, body string) error {
	const op = "storage.AddComment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO shipment_comments (shipment_id, author_uid, body)
			  VALUES ($1, $2, $3)`
	if _, err := s.DB.ExecContext(ctx, query, shipmentID, authorUID, body); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListComments возвращает комментарии отправления в порядке добавления.
func (s *Storage) ListComments(ctx context.Context, shipmentID int64) ([]models.Comment, error) {
	const op = "storage.ListComments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, author_uid, body, created_at
			  FROM shipment_comments
			  WHERE shipment_id = $1
			  ORDER BY created_at, id`
	rows, err := s.DB.QueryContext(ctx, query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Comment
	for rows.Next() {
		var c models.Comment
		if err = rows.Scan(&c.ID, &c.AuthorUID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
