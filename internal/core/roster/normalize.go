package roster

import (
	"strconv"
	"strings"
)

// Accepted column aliases per canonical field. Declared as data so that the
// header variants tolerated by the pipeline live in one place instead of
// scattered conditionals.
var (
	StudentNameAliases = []string{"name", "fullname", "studentname"}
	AlumniNameAliases  = []string{"name", "fullname", "alumniname"}
	EmailAliases       = []string{"collegeemail", "email", "college_email"}
	PhoneAliases       = []string{"mobilenumber", "phone"}
	CompanyAliases     = []string{"currentcompany", "company"}
)

// First resolves a canonical field from the first alias present in the row
// with a non-empty trimmed value.
func (r Row) First(aliases ...string) string {
	for _, a := range aliases {
		if v := strings.TrimSpace(r[a]); v != "" {
			return v
		}
	}
	return ""
}

// Get returns the trimmed value of a single column.
func (r Row) Get(col string) string {
	return strings.TrimSpace(r[col])
}

// TrimLower normalizes an identity field: trimmed and lowercased. The result
// of applying it to the resolved email is the join key between a roster row
// and an existing account.
func TrimLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SplitList parses a comma-separated list field into trimmed tokens, dropping
// empty ones: "React, Node.js , Python" → ["React", "Node.js", "Python"].
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// ParseInt parses a numeric field leniently: a non-numeric value yields nil
// rather than failing the row.
func ParseInt(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

// ParseBool parses a boolean field leniently, returning fallback when the
// value is absent or unrecognized.
func ParseBool(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	case "false", "no", "0":
		return false
	}
	return fallback
}

// EmailLocalPart returns the lowercased part before '@', used to derive a
// username when the roster does not supply one.
func EmailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return strings.ToLower(local)
}
