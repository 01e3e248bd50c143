package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"
	"unicode"

	"eventhub/internal/domain"
)

const minPasswordLen = 8

// passwordSymbols is the punctuation set accepted as the "symbol" character
// class during signup validation.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewUserService creates a UserService with the given repository and auth
// ports. emailService may be nil to disable the welcome email.
func NewUserService(
	userRepo domain.UserRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *userService) SignUp(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)

	var fields []string
	if !emailRegexp.MatchString(email) {
		fields = append(fields, "invalid email format")
	}
	if name == "" {
		fields = append(fields, "name is required")
	}
	fields = append(fields, validatePassword(password)...)
	if len(fields) > 0 {
		return nil, "", &domain.ValidationError{Fields: fields}
	}

	// Pre-check for a friendlier error; the unique constraint on users.email
	// remains the authoritative guard under concurrent signups.
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", fmt.Errorf("get user by email: %w", err)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, "", fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(email, hash, salt, name, now, now)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, "", domain.ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokenIssuer.Issue(user.ID, user.Email, s.tokenExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeEmailData{Email: user.Email, Name: user.Name}
		if err := s.emailService.SendWelcome(ctx, data); err != nil {
			log.Printf("[EMAIL] welcome email to %s failed: %v", user.Email, err)
		}
	}

	return user, token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// A single undifferentiated error for both unknown email and bad
	// password, so login responses never reveal whether the email exists.
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.Issue(user.ID, user.Email, s.tokenExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// validatePassword returns one message per missing character class, so the
// caller sees exactly what to fix.
func validatePassword(password string) []string {
	var msgs []string
	if len(password) < minPasswordLen {
		msgs = append(msgs, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		msgs = append(msgs, "password must contain an uppercase letter")
	}
	if !hasLower {
		msgs = append(msgs, "password must contain a lowercase letter")
	}
	if !hasDigit {
		msgs = append(msgs, "password must contain a digit")
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		msgs = append(msgs, "password must contain a special character")
	}
	return msgs
}
