package fe

import (
	"strings"

	"github.com/dekarrin/extractql/diag"
	"github.com/dekarrin/extractql/grammar"
)

// SplitStatements runs the §4.3 action-block grammar over one raw block
// body (as captured by ParseHighLevel, braces included): it splits the
// body into its top-level, semicolon-terminated statements, preserving each
// statement's verbatim source text (including any internal comments) for
// the registry and filter parser to classify and parse in turn.
//
// Splitting happens at the character level rather than through the shared
// token stream for the same reason scanBalanced does: a statement's raw
// text, comments included, must survive unmodified into later diagnostics.
func SplitStatements(body string) ([]string, error) {
	inner := body
	if len(inner) >= 2 && inner[0] == '{' {
		inner = inner[1 : len(inner)-1]
	}

	c := newCursor(inner)
	var stmts []string
	var cur strings.Builder
	depth := 0

	flush := func() {
		s := strings.TrimSpace(cur.String())
		if s != "" {
			stmts = append(stmts, s)
		}
		cur.Reset()
	}

	for !c.eof() {
		r := c.peek()
		switch {
		case r == '"':
			raw, _, ok := c.scanString()
			if !ok {
				return nil, diag.NewSyntaxError(&grammar.SyntaxError{
					Line: c.line, Column: c.col,
					Rule: "statement_list",
					Msg:  "unterminated string literal",
				})
			}
			cur.WriteString(raw)
		case r == '/' && c.peekAt(1) == '/':
			// A comment between statements is dropped; one inside a
			// statement stays part of its verbatim text.
			keep := strings.TrimSpace(cur.String()) != ""
			for !c.eof() && c.peek() != '\n' {
				cr := c.advance()
				if keep {
					cur.WriteRune(cr)
				}
			}
		case r == '[' || r == '{' || r == '(':
			depth++
			cur.WriteRune(c.advance())
		case r == ']' || r == '}' || r == ')':
			depth--
			cur.WriteRune(c.advance())
		case r == ';' && depth == 0:
			cur.WriteRune(c.advance())
			flush()
		default:
			cur.WriteRune(c.advance())
		}
	}

	if depth != 0 {
		return nil, diag.NewSyntaxError(&grammar.SyntaxError{
			Line: c.line, Column: c.col,
			Rule: "statement_list",
			Msg:  "unbalanced delimiter in action block",
		})
	}

	// Any trailing text after the last ';' that isn't pure whitespace/
	// comment is a dangling statement missing its terminator.
	if trailing := strings.TrimSpace(cur.String()); trailing != "" {
		return nil, diag.NewSyntaxError(&grammar.SyntaxError{
			Line: c.line, Column: c.col,
			Rule:             "statement_list",
			OffendingContext: trailing,
			Msg:              "statement missing terminating ';'",
		})
	}

	return stmts, nil
}
