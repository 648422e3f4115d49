package ports

import (
	"context"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
)

// RegisterInput carries the self-registration payload.
type RegisterInput struct {
	Name         string
	CollegeEmail string
	Password     string
	Role         string
	Department   string
	RollNumber   string
	Batch        string
}

// AuthResult is returned by Register, Login and ClaimAccount. Token is empty
// when the account is pending admin approval.
type AuthResult struct {
	Token   string
	User    *domain.User
	Pending bool
}

// AuthService defines account registration, login and the deferred-credential
// claim flow for bulk-imported accounts.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// ClaimAccount sets the first real password on an account the roster
	// import created with a non-usable sentinel credential.
	ClaimAccount(ctx context.Context, email, password string) (*AuthResult, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
}
