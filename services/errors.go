// Package services holds the blog's read and write operations over gorm.
// Controllers translate their results into HTTP.
package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
)

var (
	// ErrNotFound is returned (wrapped) when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned by Authenticate for any login failure.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// FieldErrors maps form field names to validation messages.
type FieldErrors map[string][]string

// Add appends msg to field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Has reports whether field has at least one message.
func (fe FieldErrors) Has(field string) bool { return len(fe[field]) > 0 }

// Any reports whether at least one message was added.
func (fe FieldErrors) Any() bool { return len(fe) > 0 }

// Error joins all messages, so FieldErrors can travel as an error.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msgs := range fe {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return strings.Join(parts, ", ")
}

// Outcome classifies a write.
type Outcome int

const (
	OutcomeDone Outcome = iota
	OutcomeInvalid
	OutcomeDenied
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeDenied:
		return "denied"
	}
	return "unknown"
}

// Result is returned by every post write. Post is the affected post when one
// was loaded or saved; Errors is set only for OutcomeInvalid.
type Result struct {
	Outcome Outcome
	Post    *models.Post
	Errors  FieldErrors
}

// ParseID parses a positive numeric path id, reporting ErrNotFound otherwise.
func ParseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("id %q: %w", raw, ErrNotFound)
	}
	return uint(n), nil
}

// notFound translates gorm's missing-row error into ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
