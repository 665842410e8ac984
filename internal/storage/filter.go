package storage

import "fmt"

// Op is a query comparison operator.
type Op string

const (
	// OpEqual matches documents whose field equals the value.
	OpEqual Op = "=="
	// OpArrayContains matches documents whose array field contains the value.
	OpArrayContains Op = "array-contains"
)

// Filter restricts a query to documents whose Field satisfies Op against Value.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Where builds a Filter.
func Where(field string, op Op, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

// Match reports whether doc satisfies the filter.
func (f Filter) Match(doc Doc) bool {
	v, ok := doc[f.Field]
	if !ok {
		return false
	}
	switch f.Op {
	case OpEqual:
		return equalValues(v, f.Value)
	case OpArrayContains:
		arr, ok := v.([]any)
		if !ok {
			return false
		}
		for _, item := range arr {
			if equalValues(item, f.Value) {
				return true
			}
		}
	}
	return false
}

// MatchAll reports whether doc satisfies every filter.
func MatchAll(doc Doc, filters []Filter) bool {
	for _, f := range filters {
		if !f.Match(doc) {
			return false
		}
	}
	return true
}

// Validate rejects filters a backend cannot evaluate.
func (f Filter) Validate() error {
	if f.Field == "" {
		return fmt.Errorf("storage: filter field is empty")
	}
	for _, r := range f.Field {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return fmt.Errorf("storage: invalid filter field %q", f.Field)
		}
	}
	if f.Op != OpEqual && f.Op != OpArrayContains {
		return fmt.Errorf("storage: unsupported operator %q", f.Op)
	}
	return nil
}

// equalValues compares a decoded JSON value with a caller supplied value.
// Numbers decoded from JSON are float64, so numeric kinds are compared as such.
func equalValues(docValue, want any) bool {
	if a, ok := toFloat(docValue); ok {
		if b, ok := toFloat(want); ok {
			return a == b
		}
		return false
	}
	switch d := docValue.(type) {
	case string:
		w, ok := want.(string)
		return ok && d == w
	case bool:
		w, ok := want.(bool)
		return ok && d == w
	case nil:
		return want == nil
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}
