// api/engine/schema.go
package engine

import "strings"

// ColumnKind is the value kind of a dataset column. It is a closed set; the
// evaluator switches over it exhaustively.
type ColumnKind int

const (
	KindInteger ColumnKind = iota
	KindFloat
	KindString
	// KindReference columns are compared against another named column of the
	// same record instead of a literal (actual_sales vs target_sales).
	KindReference
)

func (k ColumnKind) String() string {
	switch k {
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindReference:
		return "ref"
	}
	return "unknown"
}

// Operator is a comparison operator. Modeling it as an enum instead of the
// raw token keeps illegal operator/kind combinations unrepresentable after
// normalization.
type Operator int

const (
	OpLessThan Operator = iota
	OpLessOrEqual
	OpGreaterThan
	OpGreaterOrEqual
	OpEqual
	OpNotEqual
)

func (op Operator) String() string {
	switch op {
	case OpLessThan:
		return "<"
	case OpLessOrEqual:
		return "<="
	case OpGreaterThan:
		return ">"
	case OpGreaterOrEqual:
		return ">="
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	}
	return "?"
}

// operatorTokens is ordered so two-character tokens are tried before their
// one-character prefixes.
var operatorTokens = []struct {
	token string
	op    Operator
}{
	{"<=", OpLessOrEqual},
	{">=", OpGreaterOrEqual},
	{"!=", OpNotEqual},
	{"==", OpEqual},
	{"<", OpLessThan},
	{">", OpGreaterThan},
}

// ParseOperator matches the longest operator token at the start of s and
// returns it along with the trimmed remainder.
func ParseOperator(s string) (Operator, string, bool) {
	s = strings.TrimSpace(s)
	for _, t := range operatorTokens {
		if strings.HasPrefix(s, t.token) {
			return t.op, strings.TrimSpace(s[len(t.token):]), true
		}
	}
	return 0, "", false
}

// CompareFloat applies op to a pair of floats.
func (op Operator) CompareFloat(a, b float64) bool {
	switch op {
	case OpLessThan:
		return a < b
	case OpLessOrEqual:
		return a <= b
	case OpGreaterThan:
		return a > b
	case OpGreaterOrEqual:
		return a >= b
	case OpEqual:
		return a == b
	case OpNotEqual:
		return a != b
	}
	return false
}

// CompareInt applies op to a pair of ints.
func (op Operator) CompareInt(a, b int) bool {
	switch op {
	case OpLessThan:
		return a < b
	case OpLessOrEqual:
		return a <= b
	case OpGreaterThan:
		return a > b
	case OpGreaterOrEqual:
		return a >= b
	case OpEqual:
		return a == b
	case OpNotEqual:
		return a != b
	}
	return false
}

// CompareString applies op to strings. Only equality operators are ever
// permitted on string columns by the registry.
func (op Operator) CompareString(a, b string) bool {
	switch op {
	case OpEqual:
		return a == b
	case OpNotEqual:
		return a != b
	}
	return false
}

var allOperators = []Operator{OpLessThan, OpLessOrEqual, OpGreaterThan, OpGreaterOrEqual, OpEqual, OpNotEqual}

var equalityOperators = []Operator{OpEqual, OpNotEqual}

// ColumnDescriptor declares one evaluable dataset column: its kind, the
// operators a rule may use on it, the reference column for KindReference, and
// the closed value set for KindString columns that have one. AllowedValues is
// ordered positive-first for two-value sets so alias normalization can map
// truthy language onto the right canonical value.
type ColumnDescriptor struct {
	Name             string
	Kind             ColumnKind
	AllowedOperators []Operator
	ReferenceColumn  string
	AllowedValues    []string
}

// AllowsOperator reports whether op is legal on this column.
func (c ColumnDescriptor) AllowsOperator(op Operator) bool {
	for _, a := range c.AllowedOperators {
		if a == op {
			return true
		}
	}
	return false
}

// Registry is the immutable set of column descriptors, keyed by column name.
// It is built once at startup; the normalizer and evaluator operate purely
// off descriptors, so adding a column never changes either.
type Registry struct {
	columns map[string]ColumnDescriptor
	order   []string
}

func NewRegistry(columns ...ColumnDescriptor) *Registry {
	r := &Registry{columns: make(map[string]ColumnDescriptor, len(columns))}
	for _, c := range columns {
		if _, ok := r.columns[c.Name]; ok {
			continue
		}
		r.columns[c.Name] = c
		r.order = append(r.order, c.Name)
	}
	return r
}

// Lookup returns the descriptor for a column name.
func (r *Registry) Lookup(name string) (ColumnDescriptor, bool) {
	c, ok := r.columns[name]
	return c, ok
}

// ColumnNames returns every registered column name in declaration order.
func (r *Registry) ColumnNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// DefaultRegistry declares the canonical employee dataset schema.
func DefaultRegistry() *Registry {
	return NewRegistry(
		ColumnDescriptor{Name: "working_days", Kind: KindInteger, AllowedOperators: allOperators},
		ColumnDescriptor{Name: "target_sales", Kind: KindInteger, AllowedOperators: allOperators},
		ColumnDescriptor{Name: "actual_sales", Kind: KindReference, AllowedOperators: allOperators, ReferenceColumn: "target_sales"},
		ColumnDescriptor{Name: "customer_satisfaction_score", Kind: KindFloat, AllowedOperators: allOperators},
		ColumnDescriptor{Name: "policy_compliance", Kind: KindString, AllowedOperators: equalityOperators, AllowedValues: []string{"Yes", "No"}},
		ColumnDescriptor{Name: "low_working_days", Kind: KindString, AllowedOperators: []Operator{OpEqual}, AllowedValues: []string{"True", "False"}},
		ColumnDescriptor{Name: "target_not_met", Kind: KindString, AllowedOperators: []Operator{OpEqual}, AllowedValues: []string{"True", "False"}},
		ColumnDescriptor{Name: "low_customer_satisfaction", Kind: KindString, AllowedOperators: []Operator{OpEqual}, AllowedValues: []string{"True", "False"}},
	)
}
