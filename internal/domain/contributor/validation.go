package contributor

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like an email address: a local part, an
// @, and a domain containing a dot, none of which may contain whitespace or a
// second @. Case is preserved; no further normalization is applied.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ConflictKind classifies how an existing record with a matching email
// interacts with a requested target status.
type ConflictKind int

const (
	// ConflictNone means no existing record matches.
	ConflictNone ConflictKind = iota
	// ConflictUpdate means the existing record is update-in-place eligible.
	ConflictUpdate
	// ConflictDuplicate means the add must be rejected as a duplicate.
	ConflictDuplicate
	// ConflictResult means the existing record carries a different result.
	ConflictResult
)

// Classify applies the conflict policy: a result-bearing target against a
// record with a different non-none result is a rejecting conflict; against a
// record with the same or no result it is an update-in-place; any other match
// is a duplicate. A nil existing record never conflicts.
func Classify(existing *Contributor, target Target) ConflictKind {
	if existing == nil {
		return ConflictNone
	}
	if target.IsResult() {
		if existing.Result != ResultNone && existing.Result != target.Result() {
			return ConflictResult
		}
		return ConflictUpdate
	}
	return ConflictDuplicate
}

// FindConflict scans both partitions for a case-insensitive email match and
// classifies it against the target status.
func FindConflict(email string, target Target, active, archived []Contributor) (*Contributor, ConflictKind) {
	lowered := strings.ToLower(email)
	for _, set := range [][]Contributor{active, archived} {
		for i := range set {
			if strings.ToLower(set[i].Email) == lowered {
				return &set[i], Classify(&set[i], target)
			}
		}
	}
	return nil, ConflictNone
}
