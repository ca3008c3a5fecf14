// Package filter builds segment-targeting filter expressions for
// push-notification requests.
//
// A filter expression is a flat, ordered list of heterogeneous terms: field
// predicates ({"field","relation","value"}, plus "key" for tag predicates),
// radius-based geo predicates ({"radius","lat","long"}), and AND/OR operator
// markers ({"operator"}). The delivery service evaluates the list left to
// right with no explicit grouping, so insertion order is part of the
// expression's meaning and the builder preserves it exactly.
//
// Each recognized field accepts only a subset of the comparison relations
// (for example last_session takes only ">" and "<", country only "="). The
// builder enforces that table at the call site: an out-of-set relation is
// recorded immediately and reported by Err and ToWireFormat, while the chain
// itself keeps flowing.
//
//	body, err := filter.New().
//		SessionCount(filter.GreaterThan, 10).
//		And().
//		SessionTime(filter.LowerThan, 2000).
//		ToWireFormat()
//
// Operator markers are not placement-checked by default: a leading, trailing,
// or doubled AND/OR is passed through for the server to reject, matching the
// delivery service's own client libraries. Construct the builder with
// WithStrictOperators to reject such placements locally instead.
//
// Builders hold only in-memory state, perform no I/O, and are not safe for
// concurrent use; each instance belongs to the single caller assembling one
// request.
package filter
