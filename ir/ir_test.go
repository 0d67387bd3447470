package ir

import (
	"testing"

	"github.com/dekarrin/rezi"
	"github.com/stretchr/testify/assert"
)

func Test_PropertyValue_Equal(t *testing.T) {
	assert := assert.New(t)

	a := PropertyValue{Kind: PropertyList, List: []PropertyValue{
		{Kind: PropertyString, Str: "div"},
	}}
	b := PropertyValue{Kind: PropertyList, List: []PropertyValue{
		{Kind: PropertyString, Str: "div"},
	}}
	c := PropertyValue{Kind: PropertyList, List: []PropertyValue{
		{Kind: PropertyString, Str: "span"},
	}}

	assert.True(a.Equal(b))
	assert.False(a.Equal(c))
}

func Test_FilterConditional_Equal(t *testing.T) {
	assert := assert.New(t)

	leaf := HTMLProperty{HType: HTMLPropertyTag, Detail: PropertyValue{
		Kind: PropertyList,
		List: []PropertyValue{{Kind: PropertyString, Str: "div"}},
	}}

	a := FilterConditional{Op: OpAny, Constraints: []FilterConditional{{Leaf: &leaf}}}
	b := FilterConditional{Op: OpAny, Constraints: []FilterConditional{{Leaf: &leaf}}}

	assert.True(a.Equal(b))
	assert.True(a.Constraints[0].IsLeaf())
}

func Test_IntermediateRepresentation_Equal(t *testing.T) {
	assert := assert.New(t)

	leaf := HTMLProperty{HType: HTMLPropertyTag, Detail: PropertyValue{
		Kind: PropertyList,
		List: []PropertyValue{{Kind: PropertyString, Str: "div"}},
	}}
	cond := FilterConditional{Op: OpAny, Constraints: []FilterConditional{{Leaf: &leaf}}}

	op := FilterOp{ToAlias: "x", Condition: cond}
	assert.Equal(FilterOpExtractWhere, op.Type())

	ir1 := IntermediateRepresentation{
		Identifier: "script1",
		InstructionList: []Instruction{
			{URL: "u1", Alias: "A", Operations: []Operation{op}},
		},
	}
	ir2 := IntermediateRepresentation{
		Identifier: "script1",
		InstructionList: []Instruction{
			{URL: "u1", Alias: "A", Operations: []Operation{op}},
		},
	}

	assert.True(ir1.Equal(ir2))
}

// Test_FilterOp_BinarySnapshot checks that a FilterOp round trips through
// REZI binary encoding unchanged, the same way game state is snapshotted
// for storage elsewhere in this lineage. Operation is deliberately left out
// of scope here: it's an interface, and a snapshot format for the registry
// of concrete Operation kinds is future work, not something FilterOp alone
// needs to solve.
func Test_FilterOp_BinarySnapshot(t *testing.T) {
	assert := assert.New(t)

	leaf := HTMLProperty{HType: HTMLPropertyAttr, Detail: PropertyValue{
		Kind: PropertyAttrMap,
		Attrs: map[string]PropertyValue{
			"class": {Kind: PropertyString, Str: "ad"},
		},
	}}
	cond := FilterConditional{Op: OpAny, Constraints: []FilterConditional{{Leaf: &leaf}}}
	original := FilterOp{ToAlias: "x", FromAlias: "prev", Condition: cond}

	data := rezi.EncBinary(original)

	var restored FilterOp
	_, err := rezi.DecBinary(data, &restored)
	if !assert.NoError(err) {
		return
	}

	assert.True(original.Equal(restored))
}
