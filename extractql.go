// Package extractql compiles HTML-extraction scripts into a stable
// intermediate representation. Compiling one script is a pure function:
// given a raw source string and a caller-supplied opaque identifier, it
// either produces an IntermediateRepresentation or a structured diagnostic
// from one of the two taxonomies in package diag. There is no I/O, no
// suspension point, and no unsynchronized shared mutable state on the hot
// path — only the process-wide, read-only action and operation registries
// populated once at package init, plus the internally synchronized
// compiled-grammar cache in package grammar.
package extractql

import (
	"github.com/dekarrin/extractql/ast"
	"github.com/dekarrin/extractql/fe"
	"github.com/dekarrin/extractql/ir"
	"github.com/dekarrin/extractql/lower"
)

// Compile runs the full pipeline: parsing source to a ScriptTree, then
// lowering it to an IntermediateRepresentation tagged with identifier.
func Compile(source, identifier string) (*ir.IntermediateRepresentation, error) {
	tree, err := ParseToAST(source)
	if err != nil {
		return nil, err
	}
	return Lower(tree, identifier)
}

// ParseToAST runs the grammar-directed front end only, stopping after AST
// assembly (§4.6). Useful for callers that want to inspect or validate a
// script's structure before committing to lowering.
func ParseToAST(source string) (*ast.ScriptTree, error) {
	return fe.BuildScriptTree(source)
}

// Lower runs the §4.7 lowering pass over an already-assembled ScriptTree.
// ParseToAST does not check block targets, so a tree it produced may still
// name an undeclared target alias; Lower reports that as an external
// diagnostic rather than panicking or silently dropping the block.
func Lower(tree *ast.ScriptTree, identifier string) (*ir.IntermediateRepresentation, error) {
	return lower.Lower(tree, identifier)
}
