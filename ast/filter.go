package ast

import (
	"sort"
	"strings"

	"github.com/dekarrin/extractql/grammar"
)

// FilterType names which kind of atomic predicate a Filter leaf tests.
type FilterType string

const (
	FilterTag       FilterType = "tag"
	FilterAttribute FilterType = "attribute"
	FilterText      FilterType = "text"
)

// LogicalOp names an operator node's boolean connective.
type LogicalOp string

const (
	OpAnd LogicalOp = "and"
	OpOr  LogicalOp = "or"
	OpNot LogicalOp = "not"
)

// FilterNodeKind distinguishes the two disjoint Filter node shapes: a node
// is never both an operator and an atomic predicate.
type FilterNodeKind int

const (
	FilterKindOperator FilterNodeKind = iota
	FilterKindAtomic
)

// Filter is a node in the boolean expression tree a filter predicate parses
// to: exactly one of OperatorNode or AtomicNode, following the same
// tagged-sum idiom as Action (action.go) rather than an inheritance hierarchy.
type Filter interface {
	Kind() FilterNodeKind
	AsOperator() OperatorNode
	AsAtomic() AtomicNode
	Source() grammar.Token
	String() string
	Equal(o any) bool
}

// OperatorNode is a Filter whose value is a boolean combination of one or
// more operands. Op == OpNot requires exactly one operand; OpAnd/OpOr
// require at least two.
type OperatorNode struct {
	Op       LogicalOp
	Operands []Filter
	Src      grammar.Token
}

func (n OperatorNode) Kind() FilterNodeKind     { return FilterKindOperator }
func (n OperatorNode) AsOperator() OperatorNode { return n }
func (n OperatorNode) AsAtomic() AtomicNode      { panic("Kind() is not FilterKindAtomic") }
func (n OperatorNode) Source() grammar.Token     { return n.Src }

func (n OperatorNode) String() string {
	parts := make([]string, len(n.Operands))
	for i, op := range n.Operands {
		parts[i] = op.String()
	}
	return "(" + string(n.Op) + " " + strings.Join(parts, " ") + ")"
}

func (n OperatorNode) Equal(o any) bool {
	other, ok := o.(OperatorNode)
	if !ok {
		return false
	}
	if n.Op != other.Op || len(n.Operands) != len(other.Operands) {
		return false
	}
	for i := range n.Operands {
		if !n.Operands[i].Equal(other.Operands[i]) {
			return false
		}
	}
	return true
}

// AtomicNode is a Filter leaf testing one tag/attribute/text constraint. Its
// value lives in Items (for FilterTag/FilterText) or Attrs (for
// FilterAttribute), normalized per the atomic-value table.
type AtomicNode struct {
	FilterType FilterType
	Items      []Value
	Attrs      map[string]Value
	Src        grammar.Token
}

func (n AtomicNode) Kind() FilterNodeKind       { return FilterKindAtomic }
func (n AtomicNode) AsOperator() OperatorNode   { panic("Kind() is not FilterKindOperator") }
func (n AtomicNode) AsAtomic() AtomicNode       { return n }
func (n AtomicNode) Source() grammar.Token      { return n.Src }

func (n AtomicNode) String() string {
	if n.FilterType == FilterAttribute {
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + n.Attrs[k].String()
		}
		return "attribute{" + strings.Join(parts, ", ") + "}"
	}

	parts := make([]string, len(n.Items))
	for i, it := range n.Items {
		parts[i] = it.String()
	}
	return string(n.FilterType) + "[" + strings.Join(parts, ", ") + "]"
}

func (n AtomicNode) Equal(o any) bool {
	other, ok := o.(AtomicNode)
	if !ok {
		return false
	}
	if n.FilterType != other.FilterType {
		return false
	}
	if n.FilterType == FilterAttribute {
		return EqualAttrs(n.Attrs, other.Attrs)
	}
	return EqualValueList(n.Items, other.Items)
}
