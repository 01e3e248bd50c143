package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub/internal/domain"
)

// eventDateFormats are the accepted wire formats for an event date, tried in
// order.
var eventDateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repository.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) Create(ctx context.Context, ownerID string, in domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if ownerID == "" {
		return nil, fmt.Errorf("event owner is required")
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	location := strings.TrimSpace(in.Location)

	var fields []string
	if title == "" {
		fields = append(fields, "title is required")
	}
	if description == "" {
		fields = append(fields, "description is required")
	}
	if location == "" {
		fields = append(fields, "location is required")
	}
	var date time.Time
	if strings.TrimSpace(in.Date) == "" {
		fields = append(fields, "date is required")
	} else {
		var err error
		date, err = parseEventDate(in.Date)
		if err != nil {
			fields = append(fields, "invalid date format")
		}
	}
	// The upload collaborator already verified the MIME type; re-check the
	// precondition when it handed us one.
	if in.ImageContentType != "" && !strings.HasPrefix(in.ImageContentType, "image/") {
		fields = append(fields, "file must be an image")
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	now := time.Now()
	event := domain.NewEvent(title, description, date, location, ownerID, now, now)
	if in.ImagePath != "" {
		imagePath := in.ImagePath
		event.ImagePath = &imagePath
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// Update merges the incoming values over the stored event: empty incoming
// fields keep their stored value. Existence is checked before ownership, so a
// nonexistent event is always ErrNotFound regardless of requester.
func (s *eventService) Update(ctx context.Context, id, requesterID string, in domain.UpdateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != requesterID {
		return nil, domain.ErrForbidden
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		event.Title = title
	}
	if description := strings.TrimSpace(in.Description); description != "" {
		event.Description = description
	}
	if location := strings.TrimSpace(in.Location); location != "" {
		event.Location = location
	}
	if strings.TrimSpace(in.Date) != "" {
		date, err := parseEventDate(in.Date)
		if err != nil {
			return nil, domain.NewValidationError("invalid date format")
		}
		event.Date = date
	}
	if in.ImageContentType != "" && !strings.HasPrefix(in.ImageContentType, "image/") {
		return nil, domain.NewValidationError("file must be an image")
	}
	if in.ImagePath != "" {
		imagePath := in.ImagePath
		event.ImagePath = &imagePath
	}
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id, requesterID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != requesterID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func parseEventDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range eventDateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
