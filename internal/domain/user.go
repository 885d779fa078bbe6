package domain

import (
	"context"
	"time"
)

// User is the stored identity record. The password digest is opaque and is
// only ever compared through a PasswordHasher. Authorities are administered
// externally; the authentication core reads them but never mutates them.
type User struct {
	ID             string
	Username       string
	PasswordDigest string
	Authorities    []string
	CreatedAt      time.Time
}

type UserRepository interface {
	Create(ctx context.Context, user User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// PasswordHasher is a one-way adaptive hash with a salt baked into the
// digest.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}
