package target

import "errors"

var (
	// ErrConflictingTargets is returned when direct device targeting
	// (player or external user IDs) is combined with segments or filters.
	// The delivery service silently ignores everything except the ID lists
	// in that case, so the builder rejects the combination up front.
	ErrConflictingTargets = errors.New("device IDs cannot be combined with segments or filters")

	// ErrEmptyTarget is returned when a targeting builder with no selectors
	// at all is serialized.
	ErrEmptyTarget = errors.New("no targeting selectors set")
)
