package fe

import (
	"regexp"
	"strings"

	"github.com/dekarrin/extractql/ast"
	"github.com/dekarrin/extractql/diag"
)

// classifier is one entry in the action registry: a cheap, regex-based test
// for whether a raw statement belongs to this action kind, and the parser
// to hand it to once exactly one classifier claims it.
type classifier struct {
	actionType ast.ActionType
	matches    *regexp.Regexp
	parse      func(statement string) (ast.Action, error)
}

// registry lists every known action kind. Classification tests run against
// the trimmed statement text; adding a second action kind means adding one
// more entry here plus its own parser, without touching FilterAction's.
var registry = []classifier{
	{
		actionType: ast.ActionTypeFilter,
		matches:    regexp.MustCompile(`(?i)^extract\b`),
		parse: func(statement string) (ast.Action, error) {
			return ParseFilterAction(statement)
		},
	},
}

// Dispatch classifies one raw statement against the action registry and
// parses it with the single classifier that claims it.
//
// Zero or multiple registry entries matching the same statement means the
// statement itself is ambiguous or unrecognized to a user who wrote it —
// the registry's membership is a fixed, compiled-in fact, so this is never
// evidence of a broken registry, only of malformed input. That is why both
// cases are raised as diag.ExternalDiagnostic (UnknownActionKind /
// ConflictingActionKinds) here rather than as an InternalDiagnostic: the
// internal invariant that would actually indict the registry — the same
// action type appearing twice as a claimant of one statement, or no action
// type being registered at all — can't arise from this fixed, literal table
// and so has no code path to reach in the first place.
func Dispatch(statement string) (ast.Action, error) {
	trimmed := strings.TrimSpace(statement)

	var claimants []classifier
	for _, c := range registry {
		if c.matches.MatchString(trimmed) {
			claimants = append(claimants, c)
		}
	}

	switch len(claimants) {
	case 0:
		return nil, diag.NewUnknownActionKind(trimmed)
	case 1:
		return claimants[0].parse(trimmed)
	default:
		names := make([]string, len(claimants))
		for i, c := range claimants {
			names[i] = string(c.actionType)
		}
		return nil, diag.NewConflictingActionKinds(trimmed, names)
	}
}
