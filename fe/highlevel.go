package fe

import (
	"strings"

	"github.com/dekarrin/extractql/ast"
	"github.com/dekarrin/extractql/diag"
	"github.com/dekarrin/extractql/grammar"
)

// RawActionBlock is one `TARGET: { ... }` element of the high-level
// grammar's action_list, before the action-block parser has split its body
// into statements.
type RawActionBlock struct {
	Target string
	Body   string // verbatim substring between '{' and '}', braces included
}

type targetListOccurrence struct {
	raw  string
	line int
	col  int
}

// ParseHighLevel runs the §4.2 high-level grammar over an entire script:
// it isolates the single `targets = [...]` header and the ordered list of
// raw action blocks, without descending into any block body.
func ParseHighLevel(source string) (*ast.OrderedTargets, []RawActionBlock, error) {
	c := newCursor(source)
	var occurrences []targetListOccurrence
	var blocks []RawActionBlock

	for {
		c.skipTrivia()
		if c.eof() {
			break
		}

		startLine, startCol := c.line, c.col
		word := c.scanIdent()
		if word == "" {
			return nil, nil, diag.NewSyntaxError(&grammar.SyntaxError{
				Line: c.line, Column: c.col,
				OffendingContext: string(c.peek()),
				Rule:             "script",
				Msg:              "expected 'targets' header or a target action block",
			})
		}

		if strings.EqualFold(word, "targets") {
			c.skipTrivia()
			if c.peek() != '=' {
				return nil, nil, diag.NewSyntaxError(unexpectedHere(c, "target_list", "'='"))
			}
			c.advance()
			c.skipTrivia()
			if c.peek() != '[' {
				return nil, nil, diag.NewSyntaxError(unexpectedHere(c, "target_list", "'['"))
			}
			raw, err := c.scanBalanced('[', ']')
			if err != nil {
				return nil, nil, diag.NewSyntaxError(err.(*grammar.SyntaxError))
			}
			occurrences = append(occurrences, targetListOccurrence{raw: raw, line: startLine, col: startCol})
			continue
		}

		// TARGET_HEAD statement_list
		alias := word
		c.skipTrivia()
		if c.peek() != ':' {
			return nil, nil, diag.NewSyntaxError(unexpectedHere(c, "action", "':'"))
		}
		c.advance()
		c.skipTrivia()
		if c.peek() != '{' {
			return nil, nil, diag.NewSyntaxError(unexpectedHere(c, "action", "'{'"))
		}
		body, err := c.scanBalanced('{', '}')
		if err != nil {
			return nil, nil, diag.NewSyntaxError(err.(*grammar.SyntaxError))
		}
		blocks = append(blocks, RawActionBlock{Target: alias, Body: body})
	}

	if len(occurrences) == 0 {
		return nil, nil, diag.NewSyntaxError(&grammar.SyntaxError{
			Rule: "script",
			Msg:  "no 'targets = [...]' header found",
		})
	}
	if len(occurrences) > 1 {
		rejected := make([]string, 0, len(occurrences)-1)
		for _, o := range occurrences[1:] {
			rejected = append(rejected, o.raw)
		}
		return nil, nil, diag.NewMultipleTargetListDefinitions(occurrences[0].raw, rejected)
	}

	targets, err := parseTargetListBody(occurrences[0].raw)
	if err != nil {
		return nil, nil, err
	}

	return targets, blocks, nil
}

func unexpectedHere(c *cursor, rule, expected string) *grammar.SyntaxError {
	ctx := string(c.peek())
	if c.eof() {
		ctx = "end of input"
	}
	return &grammar.SyntaxError{
		Line: c.line, Column: c.col,
		OffendingContext: ctx,
		Rule:             rule,
		Expected:         map[string]bool{expected: true},
		Msg:              "expected " + expected + ", found " + ctx,
	}
}

// parseTargetListBody parses the comma-separated `IDENT : "URL"` pairs
// inside the `[` `]` of a target_list, in order.
func parseTargetListBody(raw string) (*ast.OrderedTargets, error) {
	// raw includes the surrounding brackets.
	inner := raw
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}

	targets := ast.NewOrderedTargets()
	c := newCursor(inner)
	for {
		c.skipTrivia()
		if c.eof() {
			break
		}
		alias := c.scanIdent()
		if alias == "" {
			return nil, diag.NewSyntaxError(unexpectedHere(c, "target_list", "identifier"))
		}
		c.skipTrivia()
		if c.peek() != ':' {
			return nil, diag.NewSyntaxError(unexpectedHere(c, "target_list", "':'"))
		}
		c.advance()
		c.skipTrivia()
		_, url, ok := c.scanString()
		if !ok {
			return nil, diag.NewSyntaxError(unexpectedHere(c, "target_list", "quoted URL"))
		}
		targets.Set(alias, url)

		c.skipTrivia()
		if c.peek() == ',' {
			c.advance()
			continue
		}
		break
	}
	c.skipTrivia()
	if !c.eof() {
		return nil, diag.NewSyntaxError(unexpectedHere(c, "target_list", "',' or ']'"))
	}
	return targets, nil
}
