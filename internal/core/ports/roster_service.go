package ports

import (
	"context"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
)

// RosterService reconciles an uploaded CSV roster into the account store.
//
// Both operations take the path of a temporary upload on local storage and
// guarantee its removal on every exit path, including a batch-fatal decode
// failure. Rows are reconciled sequentially so that two rows sharing an email
// inside one file resolve deterministically.
type RosterService interface {
	// ImportStudents merges a student roster. A row matching an existing
	// unverified account upgrades it to verified; a verified match is
	// reported as a duplicate skip.
	ImportStudents(ctx context.Context, filePath string) (*domain.ImportSummary, error)
	// ImportAlumni merges an alumni roster. Any existing account with a
	// matching email is reported as a duplicate skip: alumni accounts are
	// verified at creation, so an existing match never needs an upgrade.
	ImportAlumni(ctx context.Context, filePath string) (*domain.ImportSummary, error)
}
