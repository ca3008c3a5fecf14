package filter

// Relation is a comparison operator constraining how a predicate's value
// relates to the recipient's actual attribute value. The set is closed;
// each field accepts only a subset of it.
type Relation string

const (
	GreaterThan Relation = ">"
	LowerThan   Relation = "<"
	Equal       Relation = "="
	NotEqual    Relation = "!="
	Exists      Relation = "exists"
	NotExists   Relation = "not_exists"
)

// String returns the wire symbol of the relation.
func (r Relation) String() string {
	return string(r)
}

// IsValid reports whether r is one of the defined relations.
func (r Relation) IsValid() bool {
	switch r {
	case GreaterThan, LowerThan, Equal, NotEqual, Exists, NotExists:
		return true
	}
	return false
}
