package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
	"github.com/kgconnect/alumni-portal/internal/core/roster"
)

// RosterService merges uploaded CSV rosters into the account store. Rows are
// reconciled one at a time, in file order; a failing row is folded into the
// summary and never aborts the batch.
type RosterService struct {
	users    ports.UserRepository
	registry ports.RegistryRepository
	logger   zerolog.Logger
}

func NewRosterService(users ports.UserRepository, registry ports.RegistryRepository, logger zerolog.Logger) *RosterService {
	return &RosterService{users: users, registry: registry, logger: logger}
}

// ImportStudents reconciles a student roster file and removes it afterwards.
func (s *RosterService) ImportStudents(ctx context.Context, filePath string) (*domain.ImportSummary, error) {
	return s.runImport(ctx, filePath, domain.RoleStudent)
}

// ImportAlumni reconciles an alumni roster file and removes it afterwards.
func (s *RosterService) ImportAlumni(ctx context.Context, filePath string) (*domain.ImportSummary, error) {
	return s.runImport(ctx, filePath, domain.RoleAlumni)
}

func (s *RosterService) runImport(ctx context.Context, filePath, role string) (*domain.ImportSummary, error) {
	// The upload is untrusted and temporary: it must be gone on every exit
	// path, including a batch-fatal decode failure.
	defer removeUpload(filePath, s.logger)

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open roster upload: %w", err)
	}

	rows, err := roster.Decode(f)
	_ = f.Close()
	if err != nil {
		return nil, err
	}

	outcomes := make([]domain.ImportOutcome, 0, len(rows))
	for i, row := range rows {
		// Row 1 is the header line, so the first data row reports as 2.
		outcomes = append(outcomes, s.reconcileRow(ctx, i+2, row, role))
	}

	summary := domain.FoldOutcomes(outcomes)

	s.logger.Info().
		Str("role", role).
		Int("total_rows", summary.TotalRows).
		Int("inserted", summary.Inserted).
		Int("skipped", summary.Skipped).
		Msg("roster import completed")

	return summary, nil
}

// reconcileRow runs a single row through normalize → resolve → persist. Every
// failure is captured as a skipped outcome; nothing propagates past the row.
func (s *RosterService) reconcileRow(ctx context.Context, rowNumber int, row roster.Row, role string) domain.ImportOutcome {
	nameAliases := roster.StudentNameAliases
	if role == domain.RoleAlumni {
		nameAliases = roster.AlumniNameAliases
	}

	name := row.First(nameAliases...)
	email := roster.TrimLower(row.First(roster.EmailAliases...))

	if name == "" || email == "" {
		return domain.ImportOutcome{
			Row:         rowNumber,
			Email:       email,
			Disposition: domain.DispositionSkipped,
			Message:     "missing required fields: name/email",
		}
	}

	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return s.reconcileExisting(ctx, rowNumber, row, role, existing)
	case errors.Is(err, domain.ErrUserNotFound):
		return s.createAccount(ctx, rowNumber, row, role, name, email)
	default:
		return persistenceOutcome(rowNumber, email, err)
	}
}

// reconcileExisting applies the per-role duplicate policy. Students upgrade
// an unverified match in place; the alumni path treats any existing email as
// a duplicate because alumni accounts are verified at creation, so an
// existing match never needs an upgrade.
func (s *RosterService) reconcileExisting(ctx context.Context, rowNumber int, row roster.Row, role string, existing *domain.User) domain.ImportOutcome {
	if role == domain.RoleAlumni {
		return domain.ImportOutcome{
			Row:         rowNumber,
			Email:       existing.CollegeEmail,
			Disposition: domain.DispositionSkipped,
			Message:     "user with this email already exists",
		}
	}

	if existing.Verified {
		return domain.ImportOutcome{
			Row:         rowNumber,
			Email:       existing.CollegeEmail,
			Disposition: domain.DispositionSkipped,
			Message:     "user already exists and is already verified",
		}
	}

	// Upgrade: flip the verification flag and patch only the fields present
	// in the row. Password and PasswordInitialized are never touched, so an
	// account that already set its credential keeps it.
	existing.Verified = true
	if v := row.Get("rollnumber"); v != "" {
		existing.RollNumber = v
	}
	if v := row.Get("department"); v != "" {
		existing.Department = v
	}
	if v := row.Get("batch"); v != "" {
		existing.Batch = v
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, existing); err != nil {
		return persistenceOutcome(rowNumber, existing.CollegeEmail, err)
	}

	s.logger.Info().Str("email", existing.CollegeEmail).Msg("verified existing unverified account from roster")
	return domain.ImportOutcome{
		Row:         rowNumber,
		Email:       existing.CollegeEmail,
		Disposition: domain.DispositionUpgraded,
		Message:     "existing account verified",
	}
}

// createAccount builds the full persisted payload for a CREATE row and, for
// students, upserts the pre-verified registry entry afterwards.
func (s *RosterService) createAccount(ctx context.Context, rowNumber int, row roster.Row, role, name, email string) domain.ImportOutcome {
	var user *domain.User
	if role == domain.RoleAlumni {
		user = buildAlumniAccount(row, name, email)
	} else {
		user = buildStudentAccount(row, name, email)
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		// A concurrent import may have created the same email between our
		// lookup and this write; the uniqueness constraint reports it here
		// as a row-level failure, not a batch abort.
		return persistenceOutcome(rowNumber, email, err)
	}

	if role == domain.RoleStudent {
		s.syncRegistry(ctx, created)
	}

	s.logger.Info().Str("email", created.CollegeEmail).Str("role", role).Msg("created account from roster, password pending")
	return domain.ImportOutcome{
		Row:         rowNumber,
		Email:       created.CollegeEmail,
		Disposition: domain.DispositionInserted,
		NewName:     created.Name,
		NewEmail:    created.CollegeEmail,
	}
}

// syncRegistry upserts the pre-verified index entry for a freshly created
// student. The primary write already succeeded, so a failure here is logged
// and swallowed rather than failing the row.
func (s *RosterService) syncRegistry(ctx context.Context, u *domain.User) {
	rollNumber := u.RollNumber
	if rollNumber == "" {
		rollNumber = "N/A"
	}
	entry := &domain.PreVerifiedStudent{
		CollegeEmail: u.CollegeEmail,
		RollNumber:   rollNumber,
		Name:         u.Name,
		Department:   u.Department,
		Batch:        u.Batch,
	}
	if err := s.registry.Upsert(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("email", u.CollegeEmail).Msg("pre-verified registry sync failed")
	}
}

// buildStudentAccount fills student role defaults. The password is a
// non-usable sentinel: bulk-created accounts never carry a real credential
// until their owner claims them, regardless of any password-looking column
// in the file.
func buildStudentAccount(row roster.Row, name, email string) *domain.User {
	username := roster.TrimLower(row.Get("username"))
	if username == "" {
		username = roster.EmailLocalPart(email)
	}

	now := time.Now().UTC()
	return &domain.User{
		Name:                name,
		Username:            username,
		CollegeEmail:        email,
		PasswordHash:        domain.PasswordPendingSentinel,
		Role:                domain.RoleStudent,
		MobileNumber:        row.First(roster.PhoneAliases...),
		RollNumber:          row.Get("rollnumber"),
		RegisterNumber:      row.Get("registernumber"),
		Department:          row.Get("department"),
		YearOfStudy:         roster.ParseInt(row.Get("yearofstudy")),
		Batch:               row.Get("batch"),
		GithubRepo:          row.Get("githubrepo"),
		ProjectDomains:      roster.SplitList(row.Get("projectdomains")),
		Interests:           roster.SplitList(row.Get("interests")),
		Verified:            true,
		PasswordInitialized: false,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// buildAlumniAccount fills alumni role defaults: placement is derived from
// the company column, the username gets a role-qualifying suffix to avoid
// colliding with a student sharing the same email local-part, and interests
// fall back to the declared domain.
func buildAlumniAccount(row roster.Row, name, email string) *domain.User {
	company := row.First(roster.CompanyAliases...)
	if company == "" {
		company = "Not Placed"
	}
	// A real company wins over the isplaced column: a row naming an employer
	// is a placed alumnus even if the flag says otherwise.
	isPlaced := company != "Not Placed" || roster.ParseBool(row.Get("isplaced"), false)

	username := roster.TrimLower(row.Get("username"))
	if username == "" {
		username = roster.EmailLocalPart(email) + "_alum"
	}

	interests := roster.SplitList(row.Get("interests"))
	if len(interests) == 0 {
		if d := row.Get("domain"); d != "" {
			interests = []string{d}
		}
	}

	now := time.Now().UTC()
	return &domain.User{
		Name:                     name,
		Username:                 username,
		CollegeEmail:             email,
		PasswordHash:             domain.PasswordPendingSentinel,
		Role:                     domain.RoleAlumni,
		MobileNumber:             row.First(roster.PhoneAliases...),
		Department:               row.Get("department"),
		GraduationYear:           roster.ParseInt(row.Get("graduationyear")),
		StudyPeriod:              row.Get("studyperiod"),
		CurrentCompany:           company,
		IsPlaced:                 isPlaced,
		JobRole:                  row.Get("jobrole"),
		Domain:                   row.Get("domain"),
		Location:                 row.Get("location"),
		Salary:                   roster.ParseInt(row.Get("salary")),
		Skills:                   roster.SplitList(row.Get("skills")),
		Interests:                interests,
		LinkedIn:                 row.Get("linkedin"),
		GitHub:                   row.Get("github"),
		Bio:                      row.Get("bio"),
		IsAvailableForMentorship: roster.ParseBool(row.Get("isavailableformentorship"), true),
		Verified:                 true,
		PasswordInitialized:      false,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
}

func persistenceOutcome(rowNumber int, email string, err error) domain.ImportOutcome {
	return domain.ImportOutcome{
		Row:         rowNumber,
		Email:       email,
		Disposition: domain.DispositionSkipped,
		Message:     err.Error(),
	}
}

// removeUpload deletes the temporary upload, tolerating a file that is
// already gone.
func removeUpload(path string, logger zerolog.Logger) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error().Err(err).Str("path", path).Msg("failed to remove roster upload")
	}
}
