// Package roster decodes administrator-supplied CSV rosters into normalized
// rows. It is pure: no store or filesystem access happens here, which keeps
// the reconciliation semantics unit-testable without either.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
)

// Row maps canonical (trimmed, lowercased) column names to raw cell values.
type Row map[string]string

// Decode reads an entire CSV stream into rows keyed by canonical header.
// Header canonicalization (trim, lowercase, strip byte-order mark) is applied
// once per column, so header spelling and case variance in uploaded files is
// tolerated. The whole sequence is materialized before reconciliation starts.
//
// A framing error is batch-fatal: it wraps domain.ErrMalformedStream because
// no row can be trusted once the stream itself is broken. Ragged rows are not
// framing errors; short rows simply leave trailing columns unset.
func Decode(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedStream, err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		columns[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedStream, err)
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			if col == "" || i >= len(record) {
				continue
			}
			row[col] = record[i]
		}
		rows = append(rows, row)
	}

	return rows, nil
}
