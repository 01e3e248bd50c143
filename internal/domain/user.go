package domain

import (
	"context"
	"time"
)

// User represents a registered account. PasswordHash and Salt are never
// serialized in API responses.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(email, passwordHash, salt, name string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Salt:         salt,
		Name:         name,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// Claims is the decoded payload of a verified auth token.
type Claims struct {
	UserID string
	Email  string
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the identity claims embedded in
// it. Verification is stateless; any replica holding the signing secret can
// verify independently.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// UserService defines signup and login business logic. Both return the stored
// user (hash stripped by struct tags) and a signed token.
type UserService interface {
	SignUp(ctx context.Context, email, password, name string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
}
