package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

func newAuthService(users *stubUserRepo, registry *stubRegistryRepo) *AuthService {
	return NewAuthService(users, registry, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Register_PreVerifiedStudent(t *testing.T) {
	users := newStubUserRepo()
	registry := newStubRegistryRepo()
	registry.entries["alice@kgkite.ac.in"] = &domain.PreVerifiedStudent{
		CollegeEmail: "alice@kgkite.ac.in", RollNumber: "21CS001", Name: "Alice",
	}
	svc := newAuthService(users, registry)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:         "Alice",
		CollegeEmail: " Alice@KGkite.AC.in ",
		Password:     "s3cret",
		Role:         domain.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.Pending {
		t.Fatalf("registry match must verify immediately")
	}
	if result.Token == "" {
		t.Fatalf("expected token for verified signup")
	}
	if !result.User.Verified || !result.User.PasswordInitialized {
		t.Fatalf("unexpected account flags: %+v", result.User)
	}
	if result.User.PasswordHash == "s3cret" {
		t.Fatalf("password must be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleStudent || claims["email"] != "alice@kgkite.ac.in" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Register_UnknownStudentPending(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubRegistryRepo())

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:         "Bob",
		CollegeEmail: "bob@kgkite.ac.in",
		Password:     "s3cret",
		Role:         domain.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if !result.Pending || result.Token != "" {
		t.Fatalf("unknown student must be pending without a token: %+v", result)
	}
	if result.User.Verified {
		t.Fatalf("unknown student must not be verified")
	}
}

func TestAuthService_Register_AlumniVerifiedAtCreation(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubRegistryRepo())

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:         "Carol",
		CollegeEmail: "carol@kgkite.ac.in",
		Password:     "s3cret",
		Role:         domain.RoleAlumni,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.Pending || result.Token == "" {
		t.Fatalf("alumni must be verified at creation: %+v", result)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubRegistryRepo())

	input := ports.RegisterInput{Name: "Dana", CollegeEmail: "dana@kgkite.ac.in", Password: "s3cret", Role: domain.RoleAlumni}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubRegistryRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "", CollegeEmail: "x@kgkite.ac.in", Password: "p"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing name, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "X", CollegeEmail: "x@kgkite.ac.in", Password: "p", Role: "wizard"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubRegistryRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Eli", CollegeEmail: "eli@kgkite.ac.in", Password: "s3cret", Role: domain.RoleAlumni,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "Eli@kgkite.ac.in", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" || result.User.CollegeEmail != "eli@kgkite.ac.in" {
		t.Fatalf("unexpected login result: %+v", result)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubRegistryRepo())

	_, _ = svc.Register(context.Background(), ports.RegisterInput{
		Name: "Finn", CollegeEmail: "finn@kgkite.ac.in", Password: "s3cret", Role: domain.RoleAlumni,
	})

	if _, err := svc.Login(context.Background(), "finn@kgkite.ac.in", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubRegistryRepo())

	// Unknown account reads the same as a bad password to the caller.
	if _, err := svc.Login(context.Background(), "ghost@kgkite.ac.in", "whatever"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_ImportedAccountMustClaim(t *testing.T) {
	users := newStubUserRepo()
	users.byEmail["gina@kgkite.ac.in"] = &domain.User{
		ID:           "u1",
		CollegeEmail: "gina@kgkite.ac.in",
		PasswordHash: domain.PasswordPendingSentinel,
		Role:         domain.RoleStudent,
		Verified:     true,
	}
	svc := newAuthService(users, newStubRegistryRepo())

	// Even the literal sentinel string never authenticates.
	if _, err := svc.Login(context.Background(), "gina@kgkite.ac.in", domain.PasswordPendingSentinel); err != domain.ErrPasswordNotInitialized {
		t.Fatalf("expected ErrPasswordNotInitialized, got %v", err)
	}
}

func TestAuthService_Login_UnverifiedStudentRejected(t *testing.T) {
	users := newStubUserRepo()
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	users.byEmail["hana@kgkite.ac.in"] = &domain.User{
		ID:                  "u1",
		CollegeEmail:        "hana@kgkite.ac.in",
		PasswordHash:        string(hash),
		PasswordInitialized: true,
		Role:                domain.RoleStudent,
		Verified:            false,
	}
	svc := newAuthService(users, newStubRegistryRepo())

	if _, err := svc.Login(context.Background(), "hana@kgkite.ac.in", "s3cret"); err != domain.ErrAccountNotVerified {
		t.Fatalf("expected ErrAccountNotVerified, got %v", err)
	}
}

func TestAuthService_ClaimAccount(t *testing.T) {
	users := newStubUserRepo()
	users.byEmail["ian@kgkite.ac.in"] = &domain.User{
		ID:           "u1",
		CollegeEmail: "ian@kgkite.ac.in",
		PasswordHash: domain.PasswordPendingSentinel,
		Role:         domain.RoleStudent,
		Verified:     true,
	}
	svc := newAuthService(users, newStubRegistryRepo())

	result, err := svc.ClaimAccount(context.Background(), "ian@kgkite.ac.in", "newpass1")
	if err != nil {
		t.Fatalf("ClaimAccount returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token after claim")
	}

	// The claimed credential now works for login.
	if _, err := svc.Login(context.Background(), "ian@kgkite.ac.in", "newpass1"); err != nil {
		t.Fatalf("login after claim failed: %v", err)
	}

	// A second claim must not silently reset the account.
	if _, err := svc.ClaimAccount(context.Background(), "ian@kgkite.ac.in", "another1"); err != domain.ErrPasswordAlreadySet {
		t.Fatalf("expected ErrPasswordAlreadySet, got %v", err)
	}
}

func TestAuthService_ClaimAccount_ShortPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubRegistryRepo())

	if _, err := svc.ClaimAccount(context.Background(), "ian@kgkite.ac.in", "tiny"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
