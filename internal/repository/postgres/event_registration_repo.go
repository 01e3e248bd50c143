package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventhub/internal/domain"
)

type eventRegistrationRepository struct {
	DB *sql.DB
}

func NewEventRegistrationRepository(db *sql.DB) domain.EventRegistrationRepository {
	return &eventRegistrationRepository{
		DB: db,
	}
}

// Create inserts the registration. The UNIQUE (event_id, user_id) constraint
// is the authoritative duplicate guard: a violation maps to
// ErrAlreadyRegistered even when two concurrent requests both passed the
// service pre-check. A foreign-key violation means the event (or user) was
// deleted between check and insert, which surfaces as ErrNotFound.
func (r *eventRegistrationRepository) Create(ctx context.Context, reg *domain.EventRegistration) error {
	query := `
		INSERT INTO event_registrations (event_id, user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, reg.EventID, reg.UserID, reg.CreatedAt).Scan(&reg.ID)
	if isPQError(err, codeUniqueViolation) {
		return domain.ErrAlreadyRegistered
	}
	if isPQError(err, codeForeignKeyViolation) {
		return domain.ErrNotFound
	}
	return err
}

func (r *eventRegistrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	query := `
		SELECT id, event_id, user_id, created_at
		FROM event_registrations
		WHERE event_id = $1 AND user_id = $2
	`
	reg := &domain.EventRegistration{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).
		Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *eventRegistrationRepository) Delete(ctx context.Context, eventID, userID string) error {
	query := `DELETE FROM event_registrations WHERE event_id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotRegistered
	}
	return nil
}
