package filter

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for filter construction. ErrRelationNotAccepted is the
// stable identity for relation-compatibility failures; ValidationError
// wraps it with the field and relation that caused the failure.
var (
	// ErrRelationNotAccepted is returned when a relation is outside the
	// accepted set of the field it was supplied for.
	ErrRelationNotAccepted = errors.New("relation not accepted for this field")

	// ErrOperatorPlacement is returned in strict mode when an AND/OR marker
	// would appear first, last, or adjacent to another operator marker.
	ErrOperatorPlacement = errors.New("invalid operator placement")
)

// ValidationError describes a rejected per-field call: which field was
// targeted, the relation the caller supplied, and the set the field accepts.
type ValidationError struct {
	Field    string
	Provided Relation
	Allowed  []Relation
}

func (e *ValidationError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, r := range e.Allowed {
		allowed[i] = string(r)
	}
	return fmt.Sprintf("field %q does not accept relation %q (accepted: %s): %v",
		e.Field, e.Provided, strings.Join(allowed, ", "), ErrRelationNotAccepted)
}

// Unwrap makes errors.Is(err, ErrRelationNotAccepted) work on wrapped errors.
func (e *ValidationError) Unwrap() error {
	return ErrRelationNotAccepted
}
