package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventhub/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, location, image_path, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var imagePath sql.NullString
	if e.ImagePath != nil {
		imagePath = sql.NullString{String: *e.ImagePath, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.Location, imagePath, e.OwnerID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, description, date, location, image_path, owner_id, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var imageNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Location, &imageNull, &e.OwnerID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if imageNull.Valid {
		e.ImagePath = &imageNull.String
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, title, description, date, location, image_path, owner_id, created_at, updated_at
		FROM events
		ORDER BY date ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var imageNull sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Location, &imageNull, &e.OwnerID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if imageNull.Valid {
			e.ImagePath = &imageNull.String
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update writes the full merged row. Partial-update merging happens in the
// service, which fetched the stored row first; owner_id is never updated.
func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, date = $3, location = $4, image_path = $5, updated_at = $6
		WHERE id = $7
	`
	var imagePath sql.NullString
	if e.ImagePath != nil {
		imagePath = sql.NullString{String: *e.ImagePath, Valid: true}
	}
	result, err := r.DB.ExecContext(ctx, query,
		e.Title, e.Description, e.Date, e.Location, imagePath, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the event; its registrations go with it via the FK cascade.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
