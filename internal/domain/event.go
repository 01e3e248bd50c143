package domain

import (
	"context"
	"io"
	"time"
)

// Event represents a user-created event. OwnerID is set at creation time and
// never changes; only the owner may update or delete the event.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	ImagePath   *string   `json:"image_path,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(title, description string, date time.Time, location, ownerID string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Date:        date,
		Location:    location,
		OwnerID:     ownerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// CreateEventInput carries the raw field values for event creation. Date is
// the wire string; the service parses it. ImagePath and ImageContentType come
// from the upload collaborator when an image was attached.
type CreateEventInput struct {
	Title            string
	Description      string
	Date             string
	Location         string
	ImagePath        string
	ImageContentType string
}

// UpdateEventInput carries optional replacement values for an event. Empty
// strings mean "keep the stored value" (partial-update semantics).
type UpdateEventInput struct {
	Title            string
	Description      string
	Date             string
	Location         string
	ImagePath        string
	ImageContentType string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventService enforces validation and ownership rules on top of the
// EventRepository. Update and Delete check existence before ownership, so a
// missing event is always ErrNotFound, never ErrForbidden.
type EventService interface {
	Create(ctx context.Context, ownerID string, in CreateEventInput) (*Event, error)
	Get(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id, requesterID string, in UpdateEventInput) (*Event, error)
	Delete(ctx context.Context, id, requesterID string) error
}

// ImageStore persists an uploaded event image and returns its opaque stored
// path. Implementations must reject content types that are not image/*.
type ImageStore interface {
	Save(filename, contentType string, r io.Reader) (path string, err error)
}
