// Package target builds the audience-selection part of a notification
// request: included and excluded segments, direct device IDs, or a filter
// expression from the filter package. It enforces the delivery service's
// rule that direct device targeting cannot be combined with segment or
// filter targeting.
package target
