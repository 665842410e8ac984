package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/berkaygencdogan/camp-track-backend/internal/metrics"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("ledger: not found")
	// ErrForbidden is returned when the acting user lacks authority for an operation.
	ErrForbidden = errors.New("ledger: forbidden")
	// ErrConflict is returned when an operation contradicts the entity's state
	// or lost a concurrent update race.
	ErrConflict = errors.New("ledger: conflict")
	// ErrUnavailable is returned for transient store failures. Every ledger
	// operation is safe to retry after it.
	ErrUnavailable = errors.New("ledger: store unavailable")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + " " + v.FieldErrors[field]
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

func invalid(field, message string) *ValidationError {
	v := &ValidationError{}
	v.add(field, message)
	return v
}

// Kind classifies ledger errors for transports.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindForbidden   Kind = "forbidden"
	KindConflict    Kind = "conflict"
	KindUnavailable Kind = "unavailable"
	KindInternal    Kind = "internal"
)

// KindOf returns the Kind of err.
func KindOf(err error) Kind {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	}
	return KindInternal
}

// storeErr lifts storage errors into ledger errors. Other errors pass through.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, storage.ErrUnavailable):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

func notFound(collection, id string) error {
	return fmt.Errorf("%s %q: %w", collection, id, ErrNotFound)
}

func countConflict(collection string, err error) {
	if errors.Is(err, ErrConflict) {
		metrics.TransactionConflicts.WithLabelValues(collection).Inc()
	}
}
