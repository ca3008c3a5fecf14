package target

import (
	"bytes"
	"encoding/json"

	"github.com/dmitrymomot/pushkit/pkg/filter"
)

// Builder accumulates audience selectors for a notification request:
// segment names, direct device IDs, or a filter expression. Like the filter
// builder it is fluent, owned by a single caller, and terminally serialized;
// it holds a reference to an embedded filter builder rather than a snapshot,
// so terms added to the filter after Filters is called are still included.
//
// Builder is not safe for concurrent use.
type Builder struct {
	includedSegments []string
	excludedSegments []string
	playerIDs        []string
	externalUserIDs  []string
	filters          *filter.Builder
}

// New returns an empty targeting builder.
func New() *Builder {
	return &Builder{}
}

// Segments targets users in the named segments.
func (b *Builder) Segments(names ...string) *Builder {
	b.includedSegments = append(b.includedSegments, names...)
	return b
}

// ExcludeSegments removes users in the named segments from the audience.
func (b *Builder) ExcludeSegments(names ...string) *Builder {
	b.excludedSegments = append(b.excludedSegments, names...)
	return b
}

// PlayerIDs targets specific devices by their player ID.
func (b *Builder) PlayerIDs(ids ...string) *Builder {
	b.playerIDs = append(b.playerIDs, ids...)
	return b
}

// ExternalUserIDs targets devices by the external user ID set at
// registration time.
func (b *Builder) ExternalUserIDs(ids ...string) *Builder {
	b.externalUserIDs = append(b.externalUserIDs, ids...)
	return b
}

// Filters targets users matching a filter expression. The expression's terms
// are embedded verbatim under the "filters" key.
func (b *Builder) Filters(f *filter.Builder) *Builder {
	b.filters = f
	return b
}

// payload is the wire shape of the targeting selectors. Only populated keys
// are emitted; the delivery service treats a present-but-empty list as "no
// one" rather than "everyone".
type payload struct {
	IncludedSegments []string      `json:"included_segments,omitempty"`
	ExcludedSegments []string      `json:"excluded_segments,omitempty"`
	PlayerIDs        []string      `json:"include_player_ids,omitempty"`
	ExternalUserIDs  []string      `json:"include_external_user_ids,omitempty"`
	Filters          []filter.Term `json:"filters,omitempty"`
}

// Validate checks the selector combination. Direct device IDs are exclusive
// with segment and filter targeting, and at least one selector must be set.
// An error recorded by the embedded filter builder surfaces here too.
func (b *Builder) Validate() error {
	if b.filters != nil {
		if err := b.filters.Err(); err != nil {
			return err
		}
	}

	direct := len(b.playerIDs) > 0 || len(b.externalUserIDs) > 0
	audience := len(b.includedSegments) > 0 || len(b.excludedSegments) > 0 ||
		(b.filters != nil && b.filters.Len() > 0)

	if direct && audience {
		return ErrConflictingTargets
	}
	if !direct && !audience {
		return ErrEmptyTarget
	}
	return nil
}

// MarshalJSON serializes the selectors as a single JSON object, validating
// the combination first.
func (b *Builder) MarshalJSON() ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	p := payload{
		IncludedSegments: b.includedSegments,
		ExcludedSegments: b.excludedSegments,
		PlayerIDs:        b.playerIDs,
		ExternalUserIDs:  b.externalUserIDs,
	}
	if b.filters != nil && b.filters.Len() > 0 {
		p.Filters = b.filters.Terms()
	}

	// Keep the embedded relation symbols byte-identical to the filter
	// package's own wire output: no HTML escaping of ">" and "<". Callers
	// marshaling this builder through a default encoder get re-escaped
	// bytes at their level; encode through one with SetEscapeHTML(false)
	// when byte equality matters.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
