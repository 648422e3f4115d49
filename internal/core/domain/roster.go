package domain

import "errors"

// Disposition is the terminal state of a single roster row.
type Disposition string

const (
	DispositionInserted Disposition = "inserted"
	DispositionUpgraded Disposition = "upgraded"
	DispositionSkipped  Disposition = "skipped"
)

// ErrMalformedStream marks a batch-fatal decode failure: once CSV framing is
// broken no row from the stream can be trusted, so the whole import aborts.
var ErrMalformedStream = errors.New("malformed csv stream")

// RowError is a row-scoped import failure. It is folded into the batch
// summary and never propagates past the row that produced it.
type RowError struct {
	Row   int    `json:"row"`
	Email string `json:"email,omitempty"`
	Err   string `json:"error"`
}

// ImportOutcome records how one roster row was reconciled.
type ImportOutcome struct {
	Row         int
	Email       string
	Disposition Disposition
	Message     string
	// NewName/NewEmail are set only when the row created a fresh account.
	NewName  string
	NewEmail string
}

// NewIdentity identifies an account created by an import batch.
type NewIdentity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ImportSummary is the aggregate result of one roster import request.
type ImportSummary struct {
	TotalRows     int           `json:"totalRows"`
	Inserted      int           `json:"inserted"`
	Skipped       int           `json:"skipped"`
	Errors        []RowError    `json:"errors"`
	NewIdentities []NewIdentity `json:"newUsers"`
}

// FoldOutcomes reduces an ordered sequence of per-row outcomes into one
// summary. It is a pure function of row order: upgraded rows count as
// inserted (the row resulted in a live verified account), skipped rows carry
// their error so the administrator can correct and re-upload the file.
func FoldOutcomes(outcomes []ImportOutcome) *ImportSummary {
	s := &ImportSummary{
		TotalRows:     len(outcomes),
		Errors:        []RowError{},
		NewIdentities: []NewIdentity{},
	}
	for _, o := range outcomes {
		switch o.Disposition {
		case DispositionInserted, DispositionUpgraded:
			s.Inserted++
			if o.NewEmail != "" {
				s.NewIdentities = append(s.NewIdentities, NewIdentity{Name: o.NewName, Email: o.NewEmail})
			}
		case DispositionSkipped:
			s.Skipped++
			s.Errors = append(s.Errors, RowError{Row: o.Row, Email: o.Email, Err: o.Message})
		}
	}
	return s
}
