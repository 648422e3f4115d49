package domain

import (
	"errors"
	"time"
)

const (
	RoleStudent = "student"
	RoleAlumni  = "alumni"
	RoleAdmin   = "admin"
)

// PasswordPendingSentinel is stored in place of a hash for accounts created by
// the roster import. It is not a valid bcrypt hash, so it can never match a
// login attempt; the real credential is set by the owner via the claim flow.
const PasswordPendingSentinel = "PASSWORD_PENDING_FIRST_LOGIN"

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountNotVerified = errors.New("account pending admin approval")
var ErrPasswordNotInitialized = errors.New("account password not set yet")
var ErrPasswordAlreadySet = errors.New("account password already set")
var ErrForbidden = errors.New("access forbidden")

// User models an account in the portal: students, alumni and administrators
// share one collection, keyed by the normalized college email.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username,omitempty"`
	CollegeEmail string `json:"college_email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	MobileNumber string `json:"mobile_number,omitempty"`
	Bio          string `json:"bio,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
	GitHub       string `json:"github,omitempty"`

	// Student fields.
	RollNumber     string   `json:"roll_number,omitempty"`
	RegisterNumber string   `json:"register_number,omitempty"`
	Department     string   `json:"department,omitempty"`
	YearOfStudy    *int     `json:"year_of_study,omitempty"`
	Batch          string   `json:"batch,omitempty"`
	GithubRepo     string   `json:"github_repo,omitempty"`
	ProjectDomains []string `json:"project_domains,omitempty"`

	// Alumni fields.
	GraduationYear           *int   `json:"graduation_year,omitempty"`
	StudyPeriod              string `json:"study_period,omitempty"`
	CurrentCompany           string `json:"current_company,omitempty"`
	IsPlaced                 bool   `json:"is_placed"`
	JobRole                  string `json:"job_role,omitempty"`
	Domain                   string `json:"domain,omitempty"`
	Location                 string `json:"location,omitempty"`
	Salary                   *int   `json:"salary,omitempty"`
	IsAvailableForMentorship bool   `json:"is_available_for_mentorship"`

	Skills    []string `json:"skills,omitempty"`
	Interests []string `json:"interests,omitempty"`

	Verified            bool      `json:"is_verified"`
	PasswordInitialized bool      `json:"password_initialized"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// PreVerifiedStudent is the secondary index written by the roster import and
// consulted by self-registration to auto-verify a matching signup.
type PreVerifiedStudent struct {
	CollegeEmail string    `json:"college_email"`
	RollNumber   string    `json:"roll_number"`
	Name         string    `json:"name"`
	Department   string    `json:"department,omitempty"`
	Batch        string    `json:"batch,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
