package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

// AuthService implements registration, login and the deferred-credential
// claim flow for roster-imported accounts.
type AuthService struct {
	users     ports.UserRepository
	registry  ports.RegistryRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, registry ports.RegistryRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{users: users, registry: registry, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Register creates a new account from a self-registration. Student signups
// are checked against the pre-verified registry: a roster-known student is
// verified immediately, everyone else waits for admin approval. Alumni are
// verified at creation.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.CollegeEmail))
	if name == "" || email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role := input.Role
	if role == "" {
		role = domain.RoleStudent
	}
	if role != domain.RoleStudent && role != domain.RoleAlumni && role != domain.RoleAdmin {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	verified := role == domain.RoleAlumni
	if role == domain.RoleStudent {
		if _, err := s.registry.FindByEmail(ctx, email); err == nil {
			verified = true
			s.logger.Info().Str("email", email).Msg("signup matched pre-verified registry")
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Err(err).Str("email", email).Msg("pre-verified registry lookup failed")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:                     name,
		CollegeEmail:             email,
		PasswordHash:             string(hash),
		Role:                     role,
		Department:               strings.TrimSpace(input.Department),
		RollNumber:               strings.TrimSpace(input.RollNumber),
		Batch:                    strings.TrimSpace(input.Batch),
		Verified:                 verified,
		PasswordInitialized:      true,
		IsAvailableForMentorship: role == domain.RoleAlumni,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if !created.Verified {
		return &ports.AuthResult{User: created, Pending: true}, nil
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login authenticates by email and password. Accounts created by a roster
// import carry a non-usable sentinel credential and must be claimed first;
// unverified students and admins are rejected until approved.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.PasswordInitialized {
		return nil, domain.ErrPasswordNotInitialized
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if (user.Role == domain.RoleStudent || user.Role == domain.RoleAdmin) && !user.Verified {
		return nil, domain.ErrAccountNotVerified
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

// ClaimAccount issues the first real credential for a bulk-created account.
// It only applies while PasswordInitialized is false; a claimed account is
// never silently reset.
func (s *AuthService) ClaimAccount(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 6 {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.PasswordInitialized {
		return nil, domain.ErrPasswordAlreadySet
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = string(hash)
	user.PasswordInitialized = true
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Msg("imported account claimed")

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

// GetProfile returns the account behind a JWT subject.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"email":   user.CollegeEmail,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
