package fe

import (
	"github.com/dekarrin/extractql/ast"
)

// BuildScriptTree runs the full §4.2–§4.6 pipeline over one script's source
// text: high-level parsing, then per-block statement splitting and
// dispatch, producing the assembled ast.ScriptTree.
//
// An action block naming a target alias absent from the `targets = [...]`
// header is passed through unvalidated here: membership is checked at
// lowering time instead, against the lowering pass's own sort-by-declared-
// position step, per the design notes' resolution of that ambiguity.
func BuildScriptTree(source string) (*ast.ScriptTree, error) {
	targets, rawBlocks, err := ParseHighLevel(source)
	if err != nil {
		return nil, err
	}

	blocks := make([]ast.ActionBlock, 0, len(rawBlocks))
	for _, rb := range rawBlocks {
		stmts, err := SplitStatements(rb.Body)
		if err != nil {
			return nil, err
		}

		actions := make([]ast.Action, 0, len(stmts))
		for _, stmt := range stmts {
			action, err := Dispatch(stmt)
			if err != nil {
				return nil, err
			}
			actions = append(actions, action)
		}

		blocks = append(blocks, ast.ActionBlock{Target: rb.Target, Actions: actions})
	}

	return &ast.ScriptTree{Targets: targets, ActionBlocks: blocks}, nil
}
