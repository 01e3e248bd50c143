package domain

import (
	"context"
	"time"
)

// EventRegistration is a join record expressing a user's intent to attend an
// event. The (event_id, user_id) pair is unique.
// swagger:model EventRegistration
type EventRegistration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEventRegistration creates a new EventRegistration. ID is set by the repository on create.
func NewEventRegistration(eventID, userID string, createdAt time.Time) *EventRegistration {
	return &EventRegistration{
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: createdAt,
	}
}

// EventRegistrationRepository defines storage operations for registrations.
// Create must return ErrAlreadyRegistered when the pair already exists: the
// unique constraint in the store is the authoritative guard, the service
// pre-check only produces a friendlier error before the race window.
type EventRegistrationRepository interface {
	Create(ctx context.Context, reg *EventRegistration) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*EventRegistration, error)
	Delete(ctx context.Context, eventID, userID string) error
}

// RegistrationService enforces the at-most-one-registration invariant. User
// IDs always come from the authenticated request context, never the payload.
type RegistrationService interface {
	IsRegistered(ctx context.Context, eventID, userID string) (bool, error)
	Register(ctx context.Context, eventID, userID string) (*EventRegistration, error)
	Unregister(ctx context.Context, eventID, userID string) error
}
