package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUnknownIndustry    = errors.New("unknown industry")
	ErrMissingBody        = errors.New("missing body")
	ErrInvalidJSON        = errors.New("invalid json body")
	ErrSchemaMismatch     = errors.New("schema mismatch")
	ErrDuplicateProduct   = errors.New("duplicate product")
	ErrUnknownEntityClass = errors.New("unknown entity class")
)

// SchemaMismatchError lists the fields that made a payload differ from the
// industry's required field set.
type SchemaMismatchError struct {
	Missing []string
	Extra   []string
	Invalid []string
}

func (e *SchemaMismatchError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, "unexpected "+strings.Join(e.Extra, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(e.Invalid, ", "))
	}
	if len(parts) == 0 {
		return ErrSchemaMismatch.Error()
	}
	return ErrSchemaMismatch.Error() + ": " + strings.Join(parts, "; ")
}

func (e *SchemaMismatchError) Is(target error) bool { return target == ErrSchemaMismatch }
