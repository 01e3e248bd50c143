package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"eventhub/internal/domain"
)

type registrationService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.EventRegistrationRepository
	userRepo         domain.UserRepository
	emailService     domain.EmailService
	contextTimeout   time.Duration
}

// NewRegistrationService creates a RegistrationService with the given
// repositories. emailService may be nil to disable confirmation emails.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	registrationRepo domain.EventRegistrationRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		emailService:     emailService,
		contextTimeout:   timeout,
	}
}

func (s *registrationService) IsRegistered(ctx context.Context, eventID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	_, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get event registration: %w", err)
	}
	return true, nil
}

// Register registers the user for the event. The existence pre-check gives a
// friendly ErrAlreadyRegistered; the unique constraint in the store enforces
// the invariant when two concurrent requests race past the check. Owners may
// register for their own events.
func (s *registrationService) Register(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if _, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get event registration: %w", err)
	}

	reg := domain.NewEventRegistration(eventID, userID, time.Now())
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create event registration: %w", err)
	}

	if s.emailService != nil {
		if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
			data := &domain.RegistrationEmailData{
				Email:         user.Email,
				Name:          user.Name,
				EventTitle:    event.Title,
				EventDate:     event.Date.Format(time.RFC1123),
				EventLocation: event.Location,
			}
			if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
				log.Printf("[EMAIL] registration confirmation to %s failed: %v", user.Email, err)
			}
		}
	}

	return reg, nil
}

func (s *registrationService) Unregister(ctx context.Context, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}

	if err := s.registrationRepo.Delete(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotRegistered) {
			return domain.ErrNotRegistered
		}
		return fmt.Errorf("delete event registration: %w", err)
	}
	return nil
}
