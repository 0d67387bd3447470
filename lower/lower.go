// Package lower implements the §4.7 lowering pass from ast.ScriptTree to
// ir.IntermediateRepresentation: ordering action blocks by declared target
// position, merging same-alias blocks into one Instruction, and lowering
// each Filter tree to a FilterConditional of HTMLProperty leaves.
package lower

import (
	"sort"

	"github.com/dekarrin/extractql/ast"
	"github.com/dekarrin/extractql/diag"
	"github.com/dekarrin/extractql/ir"
)

// factory builds an ir.Operation from one ast.Action. The lowering
// registry is deliberately separate from the parser-layer action registry
// in fe/registry.go even though both are presently keyed by "filter":
// classification of raw statement text is a parsing concern, while
// generating an Operation from an already-classified Action is a
// code-generation concern, and the two may diverge as either side grows a
// second variant.
type factory func(a ast.Action) (ir.Operation, error)

var operationRegistry = map[ast.ActionType]factory{
	ast.ActionTypeFilter: buildFilterOp,
}

type positionedBlock struct {
	block ast.ActionBlock
	pos   int // index in targets.Entries(), or len(entries) if undeclared
}

// Lower runs the full lowering algorithm over a validated ScriptTree,
// producing the ordered IntermediateRepresentation for identifier.
//
// Per the design notes' resolution of the source's permissive sort key: a
// block naming an undeclared target alias sorts after every declared
// target (mirroring the original's `float('inf')` behavior) but is then
// reported via diag.NewUndeclaredTargetAlias rather than silently lowered.
// The check runs after the sort and before blocks are merged into groups,
// so no Instruction is built for a script that names an undeclared target.
func Lower(tree *ast.ScriptTree, identifier string) (*ir.IntermediateRepresentation, error) {
	entries := tree.Targets.Entries()

	positioned := make([]positionedBlock, len(tree.ActionBlocks))
	for i, b := range tree.ActionBlocks {
		pos, ok := tree.Targets.Index(b.Target)
		if !ok {
			pos = len(entries)
		}
		positioned[i] = positionedBlock{block: b, pos: pos}
	}

	sort.SliceStable(positioned, func(i, j int) bool {
		return positioned[i].pos < positioned[j].pos
	})

	for _, pb := range positioned {
		if pb.pos >= len(entries) {
			return nil, diag.NewUndeclaredTargetAlias(pb.block.Target)
		}
	}

	type group struct {
		url     string
		alias   string
		actions []ast.Action
	}
	order := make([]string, 0, len(entries))
	groups := map[string]*group{}

	for _, pb := range positioned {
		alias := pb.block.Target
		g, ok := groups[alias]
		if !ok {
			url, _ := tree.Targets.Get(alias)
			g = &group{url: url, alias: alias}
			groups[alias] = g
			order = append(order, alias)
		}
		g.actions = append(g.actions, pb.block.Actions...)
	}

	instructions := make([]ir.Instruction, 0, len(order))
	for _, alias := range order {
		g := groups[alias]
		ops := make([]ir.Operation, 0, len(g.actions))
		for _, a := range g.actions {
			factory, ok := operationRegistry[a.Type()]
			if !ok {
				return nil, diag.MissingOperationFactory(string(a.Type()))
			}
			op, err := factory(a)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		}
		instructions = append(instructions, ir.Instruction{
			URL:        g.url,
			Alias:      g.alias,
			Operations: ops,
		})
	}

	return &ir.IntermediateRepresentation{
		Identifier:      identifier,
		InstructionList: instructions,
	}, nil
}

func buildFilterOp(a ast.Action) (ir.Operation, error) {
	fa := a.AsFilterAction()
	condition := lowerFilterRoot(fa.Root)
	return ir.FilterOp{
		ToAlias:   fa.Metadata.Assignment,
		FromAlias: fa.Metadata.FromAlias,
		Condition: condition,
	}, nil
}

// lowerFilterRoot lowers a Filter tree's root, applying the wrapping law:
// a lone atomic root is wrapped in a one-child FilterConditional{op: any}.
func lowerFilterRoot(f ast.Filter) ir.FilterConditional {
	lowered := lowerFilter(f)
	if f.Kind() == ast.FilterKindAtomic {
		return ir.FilterConditional{Op: ir.OpAny, Constraints: []ir.FilterConditional{lowered}}
	}
	return lowered
}

func lowerFilter(f ast.Filter) ir.FilterConditional {
	switch f.Kind() {
	case ast.FilterKindOperator:
		op := f.AsOperator()
		constraints := make([]ir.FilterConditional, len(op.Operands))
		for i, operand := range op.Operands {
			constraints[i] = lowerFilter(operand)
		}
		return ir.FilterConditional{Op: ir.OpType(op.Op), Constraints: constraints}
	default:
		atom := f.AsAtomic()
		prop := lowerAtomic(atom)
		return ir.FilterConditional{Leaf: &prop}
	}
}

func lowerAtomic(atom ast.AtomicNode) ir.HTMLProperty {
	switch atom.FilterType {
	case ast.FilterAttribute:
		attrs := make(map[string]ir.PropertyValue, len(atom.Attrs))
		for k, v := range atom.Attrs {
			attrs[k] = lowerValue(v)
		}
		return ir.HTMLProperty{
			HType:  ir.HTMLPropertyAttr,
			Detail: ir.PropertyValue{Kind: ir.PropertyAttrMap, Attrs: attrs},
		}
	default:
		htype := ir.HTMLPropertyTag
		if atom.FilterType == ast.FilterText {
			htype = ir.HTMLPropertyText
		}
		list := make([]ir.PropertyValue, len(atom.Items))
		for i, v := range atom.Items {
			list[i] = lowerValue(v)
		}
		return ir.HTMLProperty{
			HType:  htype,
			Detail: ir.PropertyValue{Kind: ir.PropertyList, List: list},
		}
	}
}

func lowerValue(v ast.Value) ir.PropertyValue {
	switch v.Shape {
	case ast.ShapeString:
		return ir.PropertyValue{Kind: ir.PropertyString, Str: v.Str}
	case ast.ShapeList:
		items := make([]ir.PropertyValue, len(v.List))
		for i, s := range v.List {
			items[i] = ir.PropertyValue{Kind: ir.PropertyString, Str: s}
		}
		return ir.PropertyValue{Kind: ir.PropertyList, List: items}
	case ast.ShapeContains:
		inner := lowerValue(*v.Inner)
		return ir.PropertyValue{Kind: ir.PropertyContains, Inner: &inner}
	default:
		return ir.PropertyValue{}
	}
}
