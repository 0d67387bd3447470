package ast

import "fmt"

// ValueShape distinguishes the three normalized shapes an atomic filter's
// value components can take, per the atomic-value normalization table.
type ValueShape int

const (
	ShapeString ValueShape = iota
	ShapeList
	ShapeContains
)

// Value is one normalized value component: either a bare string, a list of
// strings, or a "contains" wrapper around another Value (which itself must
// be ShapeString or ShapeList — contains is never nested under contains).
type Value struct {
	Shape ValueShape
	Str   string
	List  []string
	Inner *Value
}

// StringValue builds a ShapeString Value.
func StringValue(s string) Value { return Value{Shape: ShapeString, Str: s} }

// ListValue builds a ShapeList Value.
func ListValue(items []string) Value { return Value{Shape: ShapeList, List: items} }

// ContainsValue wraps inner (ShapeString or ShapeList) in a "contains"
// constraint.
func ContainsValue(inner Value) Value {
	innerCopy := inner
	return Value{Shape: ShapeContains, Inner: &innerCopy}
}

func (v Value) String() string {
	switch v.Shape {
	case ShapeString:
		return fmt.Sprintf("%q", v.Str)
	case ShapeList:
		return fmt.Sprintf("%q", v.List)
	case ShapeContains:
		return "contains(" + v.Inner.String() + ")"
	default:
		return "<invalid value>"
	}
}

// Equal reports deep structural equality between two Values.
func (v Value) Equal(o Value) bool {
	if v.Shape != o.Shape {
		return false
	}
	switch v.Shape {
	case ShapeString:
		return v.Str == o.Str
	case ShapeList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if v.List[i] != o.List[i] {
				return false
			}
		}
		return true
	case ShapeContains:
		if v.Inner == nil || o.Inner == nil {
			return v.Inner == o.Inner
		}
		return v.Inner.Equal(*o.Inner)
	default:
		return false
	}
}

// EqualValueList compares two ordered Value slices (tag/text atom values).
func EqualValueList(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// EqualAttrs compares two attribute maps (key -> Value).
func EqualAttrs(a, b map[string]Value) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		ov, ok := b[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
