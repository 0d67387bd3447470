// Package fe ("front end") implements the grammar-directed parsing layers
// described in the spec: the high-level parser (targets + raw action
// blocks), the action-block parser (statement splitting), the action
// registry & dispatcher, and the filter parser. Each consumes a raw
// substring (the filter parser through a grammar.TokenStream) and
// immediately reduces it to typed ast values; no intermediate tree outlives
// a single parsing call.
package fe

import (
	"strings"

	"github.com/dekarrin/extractql/grammar"
)

// cursor is a rune-at-a-time scanning position over raw script text, used
// by the high-level and action-block layers to find structural delimiters
// (braces, brackets, the target-list header) while staying quote- and
// comment-aware, without tokenizing the whole script through the shared
// lexer up front — those layers need exact, verbatim substrings (a raw
// block body, a raw statement), which a token stream already discards.
type cursor struct {
	runes []rune
	pos   int
	line  int
	col   int
}

func newCursor(s string) *cursor {
	return &cursor{runes: []rune(s), pos: 0, line: 1, col: 1}
}

func (c *cursor) eof() bool { return c.pos >= len(c.runes) }

func (c *cursor) peek() rune {
	if c.eof() {
		return 0
	}
	return c.runes[c.pos]
}

func (c *cursor) peekAt(off int) rune {
	if c.pos+off >= len(c.runes) {
		return 0
	}
	return c.runes[c.pos+off]
}

func (c *cursor) advance() rune {
	r := c.runes[c.pos]
	c.pos++
	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return r
}

// skipTrivia skips whitespace and `// ...` line comments.
func (c *cursor) skipTrivia() {
	for !c.eof() {
		r := c.peek()
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			c.advance()
			continue
		}
		if r == '/' && c.peekAt(1) == '/' {
			for !c.eof() && c.peek() != '\n' {
				c.advance()
			}
			continue
		}
		break
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isIdentRune(r rune) bool { return isIdentStart(r) }

// scanIdent consumes a maximal run of [A-Za-z_] and returns it, or "" if
// the cursor isn't positioned at one.
func (c *cursor) scanIdent() string {
	if !isIdentStart(c.peek()) {
		return ""
	}
	var sb strings.Builder
	for isIdentRune(c.peek()) {
		sb.WriteRune(c.advance())
	}
	return sb.String()
}

// scanString consumes a double-quoted string literal, including the
// quotes, and returns its raw form (quotes still attached) plus the
// unquoted content. Backslash is not interpreted: content is opaque up to
// the next double quote.
func (c *cursor) scanString() (raw string, content string, ok bool) {
	if c.peek() != '"' {
		return "", "", false
	}
	var sb strings.Builder
	sb.WriteRune(c.advance()) // opening quote
	for !c.eof() && c.peek() != '"' {
		sb.WriteRune(c.advance())
	}
	if c.eof() {
		return "", "", false
	}
	sb.WriteRune(c.advance()) // closing quote
	raw = sb.String()
	return raw, raw[1 : len(raw)-1], true
}

// scanBalanced scans a delimiter-balanced region starting at the current
// position (which must be `open`) through its matching `close`, skipping
// over the contents of any quoted strings and comments so a `}` or `]`
// inside one doesn't prematurely end the region. It returns the full raw
// text including both delimiters.
func (c *cursor) scanBalanced(open, close rune) (string, error) {
	if c.peek() != open {
		return "", newCursorSyntaxError(c, "scanBalanced", string(open))
	}
	start := c.pos
	depth := 0
	for !c.eof() {
		r := c.peek()
		switch {
		case r == '"':
			if _, _, ok := c.scanString(); !ok {
				return "", newCursorSyntaxError(c, "scanBalanced", "closing quote")
			}
			continue
		case r == '/' && c.peekAt(1) == '/':
			for !c.eof() && c.peek() != '\n' {
				c.advance()
			}
			continue
		case r == open:
			depth++
			c.advance()
		case r == close:
			depth--
			c.advance()
			if depth == 0 {
				return string(c.runes[start:c.pos]), nil
			}
		default:
			c.advance()
		}
	}
	return "", newCursorSyntaxError(c, "scanBalanced", string(close))
}

func newCursorSyntaxError(c *cursor, rule, expected string) *grammar.SyntaxError {
	return &grammar.SyntaxError{
		Line:             c.line,
		Column:           c.col,
		OffendingContext: "end of input",
		Rule:             rule,
		Expected:         map[string]bool{expected: true},
		Msg:              "unexpected end of input while looking for " + expected,
	}
}
