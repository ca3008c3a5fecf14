package filter

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Logical field names as the delivery service knows them. BoughtSKU is the
// exception: its wire field is the caller-supplied SKU literal, so the
// constant below keys only its relation-compatibility entry.
const (
	fieldLastSession  = "last_session"
	fieldFirstSession = "first_session"
	fieldSessionCount = "session_count"
	fieldSessionTime  = "session_time"
	fieldAmountSpent  = "amount_spent"
	fieldBoughtSKU    = "bought_sku"
	fieldTag          = "tag"
	fieldLanguage     = "language"
	fieldAppVersion   = "app_version"
	fieldCountry      = "country"
)

// acceptedRelations is the static relation-compatibility table. It is the
// single source of truth consulted by every per-field method; a field absent
// from the table accepts no relation at all.
var acceptedRelations = map[string][]Relation{
	fieldLastSession:  {GreaterThan, LowerThan},
	fieldFirstSession: {GreaterThan, LowerThan},
	fieldSessionCount: {GreaterThan, LowerThan, Equal, NotEqual},
	fieldSessionTime:  {GreaterThan, LowerThan},
	fieldAmountSpent:  {GreaterThan, LowerThan, Equal},
	fieldBoughtSKU:    {GreaterThan, LowerThan, Equal},
	fieldTag:          {GreaterThan, LowerThan, Equal, NotEqual, Exists, NotExists},
	fieldLanguage:     {Equal, NotEqual},
	fieldAppVersion:   {GreaterThan, LowerThan, Equal, NotEqual},
	fieldCountry:      {Equal},
}

// Builder accumulates an ordered sequence of filter terms and serializes it
// to the wire format under the notification request's "filters" key. Term
// order is semantically significant: the delivery service evaluates the flat
// list left to right, with AND/OR markers combining adjacent predicates and
// no explicit grouping.
//
// Every mutating method returns the builder itself so calls chain. A
// rejected relation is recorded at the offending call site and reported by
// Err and ToWireFormat; later calls still execute, so a chain never panics
// mid-construction.
//
// Builder is not safe for concurrent use. Each instance is meant to be owned
// by the single caller assembling one request; share it only behind external
// locking.
type Builder struct {
	terms  []Term
	err    error
	strict bool
}

// Option configures builder construction.
type Option func(*Builder)

// WithStrictOperators rejects AND/OR markers that would appear first, last,
// or adjacent to another operator marker. The default (permissive) behavior
// matches the delivery service's documented builder semantics, which accept
// any placement and leave malformed sequences to the server; enable strict
// mode to catch those mistakes client-side instead.
func WithStrictOperators() Option {
	return func(b *Builder) {
		b.strict = true
	}
}

// New returns an empty filter expression builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		terms: make([]Term, 0, 8),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// accepts is the single relation-compatibility enforcement point shared by
// every per-field method. It records a ValidationError for the first
// rejected relation and reports whether the call may proceed.
func (b *Builder) accepts(field string, provided Relation) bool {
	allowed := acceptedRelations[field]
	for _, r := range allowed {
		if provided == r {
			return true
		}
	}
	b.fail(&ValidationError{Field: field, Provided: provided, Allowed: allowed})
	return false
}

// fail records the first error; later failures keep the original cause.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) appendPredicate(field, key string, relation Relation, value any) *Builder {
	b.terms = append(b.terms, predicateTerm{
		Field:    field,
		Key:      key,
		Relation: relation,
		Value:    value,
	})
	return b
}

// LastSession filters on hours elapsed since the user's last session.
// Accepted relations: ">", "<".
func (b *Builder) LastSession(relation Relation, hoursAgo float64) *Builder {
	if !b.accepts(fieldLastSession, relation) {
		return b
	}
	return b.appendPredicate(fieldLastSession, "", relation, hoursAgo)
}

// FirstSession filters on hours elapsed since the user's first session.
// Accepted relations: ">", "<".
func (b *Builder) FirstSession(relation Relation, hoursAgo float64) *Builder {
	if !b.accepts(fieldFirstSession, relation) {
		return b
	}
	return b.appendPredicate(fieldFirstSession, "", relation, hoursAgo)
}

// SessionCount filters on the number of sessions the user has had.
// Accepted relations: ">", "<", "=", "!=".
func (b *Builder) SessionCount(relation Relation, count int) *Builder {
	if !b.accepts(fieldSessionCount, relation) {
		return b
	}
	return b.appendPredicate(fieldSessionCount, "", relation, count)
}

// SessionTime filters on total time in seconds the user has spent in the app.
// Accepted relations: ">", "<".
func (b *Builder) SessionTime(relation Relation, seconds int) *Builder {
	if !b.accepts(fieldSessionTime, relation) {
		return b
	}
	return b.appendPredicate(fieldSessionTime, "", relation, seconds)
}

// AmountSpent filters on the amount in USD the user has spent on in-app
// purchases. Accepted relations: ">", "<", "=".
func (b *Builder) AmountSpent(relation Relation, amount float64) *Builder {
	if !b.accepts(fieldAmountSpent, relation) {
		return b
	}
	return b.appendPredicate(fieldAmountSpent, "", relation, amount)
}

// BoughtSKU filters on the amount spent on one specific in-app purchase SKU.
// The SKU literal becomes the predicate's field on the wire. Accepted
// relations: ">", "<", "=".
func (b *Builder) BoughtSKU(skuKey string, relation Relation, amount float64) *Builder {
	if !b.accepts(fieldBoughtSKU, relation) {
		return b
	}
	return b.appendPredicate(skuKey, "", relation, amount)
}

// Tag filters on a user tag. The predicate's field is the literal "tag" and
// tagKey names the attribute compared. All relations are accepted; for
// Exists and NotExists the value is ignored by the delivery service but is
// still carried on the wire, so pass anything (an empty string is fine).
func (b *Builder) Tag(tagKey string, relation Relation, value string) *Builder {
	if !b.accepts(fieldTag, relation) {
		return b
	}
	return b.appendPredicate(fieldTag, tagKey, relation, value)
}

// Language filters on the device's two-letter language code.
// Accepted relations: "=", "!=".
func (b *Builder) Language(relation Relation, langCode string) *Builder {
	if !b.accepts(fieldLanguage, relation) {
		return b
	}
	return b.appendPredicate(fieldLanguage, "", relation, langCode)
}

// AppVersion filters on the installed app version string.
// Accepted relations: ">", "<", "=", "!=".
func (b *Builder) AppVersion(relation Relation, version string) *Builder {
	if !b.accepts(fieldAppVersion, relation) {
		return b
	}
	return b.appendPredicate(fieldAppVersion, "", relation, version)
}

// Country filters on the device's two-letter country code. The relation is
// always "=", so none is taken.
func (b *Builder) Country(countryCode string) *Builder {
	return b.appendPredicate(fieldCountry, "", Equal, countryCode)
}

// Location selects users within radius meters of the given point. Geo terms
// carry no relation and skip relation validation entirely. Coordinates are
// not range-checked here; the delivery service validates them.
func (b *Builder) Location(radius, lat, long float64) *Builder {
	b.terms = append(b.terms, geoTerm{Radius: radius, Lat: lat, Long: long})
	return b
}

// And appends an AND marker between the previous and next entries.
func (b *Builder) And() *Builder {
	return b.appendOperator(operatorAnd)
}

// Or appends an OR marker between the previous and next entries.
func (b *Builder) Or() *Builder {
	return b.appendOperator(operatorOr)
}

func (b *Builder) appendOperator(op string) *Builder {
	if b.strict {
		if len(b.terms) == 0 {
			b.fail(fmt.Errorf("%w: %s may not lead the expression", ErrOperatorPlacement, op))
			return b
		}
		if isOperator(b.terms[len(b.terms)-1]) {
			b.fail(fmt.Errorf("%w: %s may not follow another operator", ErrOperatorPlacement, op))
			return b
		}
	}
	b.terms = append(b.terms, operatorTerm{Operator: op})
	return b
}

// Err returns the first error recorded during construction, or nil. Check it
// after a chain, or rely on ToWireFormat surfacing the same error.
func (b *Builder) Err() error {
	return b.err
}

// Len returns the number of accumulated terms.
func (b *Builder) Len() int {
	return len(b.terms)
}

// Terms returns the accumulated terms in insertion order. The slice is a
// copy; mutating it does not affect the builder. Callers embedding the
// expression into a larger payload (a targeting or request builder) marshal
// these directly instead of re-parsing ToWireFormat output.
func (b *Builder) Terms() []Term {
	out := make([]Term, len(b.terms))
	copy(out, b.terms)
	return out
}

// ToWireFormat serializes the expression to the JSON array embedded under
// the request's "filters" key: terms in insertion order, each rendered as
// its literal object shape. It is a pure projection of builder state, safe
// to call repeatedly, and performs no validation beyond surfacing an error
// already recorded during construction (plus, in strict mode, rejecting a
// trailing operator, which is only detectable here).
func (b *Builder) ToWireFormat() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.strict && len(b.terms) > 0 && isOperator(b.terms[len(b.terms)-1]) {
		return nil, fmt.Errorf("%w: expression may not end with an operator", ErrOperatorPlacement)
	}
	return encodeJSON(b.terms)
}

// encodeJSON marshals without HTML escaping. The ">" and "<" relation
// symbols must reach the wire literally, not as > and <, and
// json.Marshal escapes them unconditionally.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encode terminates the value with a newline that does not belong to it.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
