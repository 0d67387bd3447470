// Package ir defines the intermediate representation the lowering pass
// produces: per-URL Instructions each carrying an ordered list of typed
// Operations, whose condition trees bottom out in HTMLProperty leaves
// rather than the AST's atomic filters. Every value here is immutable once
// constructed and safe to share freely once a compilation finishes.
package ir

import (
	"fmt"
	"sort"
	"strings"
)

// OpType names the kind of a lowered HTML-property predicate tree.
type OpType string

const (
	OpAnd OpType = "and"
	OpOr  OpType = "or"
	OpNot OpType = "not"
	OpAny OpType = "any"
)

// HTMLPropertyType names the kind of HTML structure an HTMLProperty tests.
type HTMLPropertyType string

const (
	HTMLPropertyTag  HTMLPropertyType = "tag"
	HTMLPropertyAttr HTMLPropertyType = "attr"
	HTMLPropertyText HTMLPropertyType = "text"
)

// PropertyValue is the normalized detail payload of an HTMLProperty: a bare
// string, a list of strings, a "contains" wrapper around another
// PropertyValue, or (for attribute properties only) a key -> PropertyValue
// map. Exactly one of these is populated per the Kind tag. List holds
// PropertyValue elements rather than bare strings so the tag/text Detail
// can represent both a plain string list and the single-element
// contains-wrapped list the normalization table produces for
// `contains [...]`.
type PropertyValue struct {
	Kind  PropertyValueKind
	Str   string
	List  []PropertyValue
	Inner *PropertyValue
	Attrs map[string]PropertyValue
}

type PropertyValueKind int

const (
	PropertyString PropertyValueKind = iota
	PropertyList
	PropertyContains
	PropertyAttrMap
)

func (v PropertyValue) String() string {
	switch v.Kind {
	case PropertyString:
		return fmt.Sprintf("%q", v.Str)
	case PropertyList:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case PropertyContains:
		return "contains(" + v.Inner.String() + ")"
	case PropertyAttrMap:
		keys := make([]string, 0, len(v.Attrs))
		for k := range v.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ":" + v.Attrs[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<invalid property value>"
	}
}

// Equal reports deep structural equality between two PropertyValues.
func (v PropertyValue) Equal(o PropertyValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case PropertyString:
		return v.Str == o.Str
	case PropertyList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	case PropertyContains:
		if v.Inner == nil || o.Inner == nil {
			return v.Inner == o.Inner
		}
		return v.Inner.Equal(*o.Inner)
	case PropertyAttrMap:
		if len(v.Attrs) != len(o.Attrs) {
			return false
		}
		for k, val := range v.Attrs {
			oval, ok := o.Attrs[k]
			if !ok || !val.Equal(oval) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// HTMLProperty is a lowered atomic filter: a tag/attr/text test plus its
// normalized value, the leaf type of a FilterConditional tree.
type HTMLProperty struct {
	HType  HTMLPropertyType
	Detail PropertyValue
}

func (p HTMLProperty) Equal(o HTMLProperty) bool {
	return p.HType == o.HType && p.Detail.Equal(o.Detail)
}

func (p HTMLProperty) String() string {
	return string(p.HType) + ":" + p.Detail.String()
}

// FilterConditional mirrors the AST's Filter tree but with HTMLProperty
// leaves: operator nodes carry one of {and, or, not, any}, where "any" is
// reserved for the synthetic one-child wrapper the lowering pass builds
// around a lone atomic filter — it is never parse-visible.
type FilterConditional struct {
	Op          OpType
	Constraints []FilterConditional // non-empty for and/or/not/any
	Leaf        *HTMLProperty       // set iff Constraints is empty
}

// IsLeaf reports whether this node is an HTMLProperty rather than an
// operator over child conditionals.
func (c FilterConditional) IsLeaf() bool { return c.Leaf != nil }

func (c FilterConditional) Equal(o FilterConditional) bool {
	if c.IsLeaf() != o.IsLeaf() {
		return false
	}
	if c.IsLeaf() {
		return c.Leaf.Equal(*o.Leaf)
	}
	if c.Op != o.Op || len(c.Constraints) != len(o.Constraints) {
		return false
	}
	for i := range c.Constraints {
		if !c.Constraints[i].Equal(o.Constraints[i]) {
			return false
		}
	}
	return true
}

func (c FilterConditional) String() string {
	if c.IsLeaf() {
		return c.Leaf.String()
	}
	parts := make([]string, len(c.Constraints))
	for i, ch := range c.Constraints {
		parts[i] = ch.String()
	}
	return string(c.Op) + "[" + strings.Join(parts, ", ") + "]"
}

// OperationType string tags an Operation's concrete kind, matching the
// convention established for ast.ActionType: an opaque newtype around a
// short string.
type OperationType string

// Operation is one lowered action within an Instruction. FilterOp is
// presently the only variant; a second would implement this interface
// alongside it and register its own lowering factory.
type Operation interface {
	Type() OperationType
	AsFilterOp() FilterOp
}

const (
	FilterOpExtractWhere     OperationType = "FilterOp_ExtractWhere"
	FilterOpExtractFromWhere OperationType = "FilterOp_ExtractFromWhere"
)

// FilterOp is the lowered form of a parsed ast.FilterAction.
type FilterOp struct {
	ToAlias   string
	FromAlias string
	Condition FilterConditional
}

func (f FilterOp) Type() OperationType {
	if f.FromAlias != "" {
		return FilterOpExtractFromWhere
	}
	return FilterOpExtractWhere
}

func (f FilterOp) AsFilterOp() FilterOp { return f }

func (f FilterOp) Equal(o FilterOp) bool {
	return f.ToAlias == o.ToAlias &&
		f.FromAlias == o.FromAlias &&
		f.Condition.Equal(o.Condition)
}

// Instruction is the IR unit per (url, alias): one or more merged action
// blocks' worth of operations, in source order.
type Instruction struct {
	URL        string
	Alias      string
	Operations []Operation
}

func (i Instruction) Equal(o Instruction) bool {
	if i.URL != o.URL || i.Alias != o.Alias || len(i.Operations) != len(o.Operations) {
		return false
	}
	for idx := range i.Operations {
		lf, lok := i.Operations[idx].(FilterOp)
		rf, rok := o.Operations[idx].(FilterOp)
		if lok != rok {
			return false
		}
		if lok && !lf.Equal(rf) {
			return false
		}
	}
	return true
}

// IntermediateRepresentation is the root value the lowering pass produces:
// the compiled, ordered form of one script, tagged with the caller-supplied
// opaque identifier.
type IntermediateRepresentation struct {
	Identifier      string
	InstructionList []Instruction
}

// Equal reports deep structural equality between two IRs, used by the
// idempotent-lowering property test.
func (ir IntermediateRepresentation) Equal(o IntermediateRepresentation) bool {
	if ir.Identifier != o.Identifier || len(ir.InstructionList) != len(o.InstructionList) {
		return false
	}
	for i := range ir.InstructionList {
		if !ir.InstructionList[i].Equal(o.InstructionList[i]) {
			return false
		}
	}
	return true
}
