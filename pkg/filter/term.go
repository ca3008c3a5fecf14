package filter

// Term is one entry in a filter expression. Exactly three shapes exist:
// a field predicate, a radius-based geo predicate, and an AND/OR operator
// marker. The interface is sealed; terms are created only through Builder
// methods, which keeps every term's shape valid by construction.
type Term interface {
	// term is unexported to close the set of implementations.
	term()
}

// predicateTerm is a single field/relation/value comparison. Key is set only
// for tag predicates, where Field is the literal "tag" and Key names the
// actual attribute being compared.
type predicateTerm struct {
	Field    string   `json:"field"`
	Key      string   `json:"key,omitempty"`
	Relation Relation `json:"relation"`
	Value    any      `json:"value"`
}

// geoTerm selects users within Radius meters of a center point. It carries
// no field or relation; the shape itself implies "within radius".
type geoTerm struct {
	Radius float64 `json:"radius"`
	Lat    float64 `json:"lat"`
	Long   float64 `json:"long"`
}

// operatorTerm is a positional AND/OR marker between two predicates. It is
// not a predicate itself and the wire format has no grouping around it.
type operatorTerm struct {
	Operator string `json:"operator"`
}

func (predicateTerm) term() {}
func (geoTerm) term()       {}
func (operatorTerm) term()  {}

const (
	operatorAnd = "AND"
	operatorOr  = "OR"
)

func isOperator(t Term) bool {
	_, ok := t.(operatorTerm)
	return ok
}
