package ports

import (
	"context"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
)

// UserRepository defines persistence operations for accounts. The store
// enforces email uniqueness; Create surfaces a violation as
// domain.ErrUserExists.
type UserRepository interface {
	// FindByEmail looks up an account by its normalized college email.
	// Returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	// Update persists the current state of an already-stored account.
	Update(ctx context.Context, u *domain.User) error
}

// RegistryRepository is the pre-verified student index: written by the roster
// import as a side effect of new student creation, read by self-registration
// to auto-verify a matching signup.
type RegistryRepository interface {
	// Upsert creates or refreshes the entry keyed by college email.
	Upsert(ctx context.Context, entry *domain.PreVerifiedStudent) error
	FindByEmail(ctx context.Context, email string) (*domain.PreVerifiedStudent, error)
}
