package grammar

import (
	"regexp"
	"strings"
)

// matchRule is one candidate lexeme pattern, tried in order at the current
// scan position. This table-of-patterns shape mirrors the regularModeMatchRules
// table the same author's earlier hand-written tunascript lexer used: a
// short ordered list of literal/regex matchers rather than a generated DFA.
type matchRule struct {
	pattern *regexp.Regexp
	class   TokenClass // zero value means "discard" (whitespace, comments)
}

var lineComment = regexp.MustCompile(`^//[^\n]*`)

var rules = []matchRule{
	{pattern: regexp.MustCompile(`^\s+`)},
	{pattern: lineComment},
	{pattern: regexp.MustCompile(`^->`), class: TCArrow},
	{pattern: regexp.MustCompile(`^=`), class: TCEquals},
	{pattern: regexp.MustCompile(`^:`), class: TCColon},
	{pattern: regexp.MustCompile(`^,`), class: TCComma},
	{pattern: regexp.MustCompile(`^;`), class: TCSemi},
	{pattern: regexp.MustCompile(`^\[`), class: TCLBrack},
	{pattern: regexp.MustCompile(`^\]`), class: TCRBrack},
	{pattern: regexp.MustCompile(`^\{`), class: TCLBrace},
	{pattern: regexp.MustCompile(`^\}`), class: TCRBrace},
	{pattern: regexp.MustCompile(`^\(`), class: TCLParen},
	{pattern: regexp.MustCompile(`^\)`), class: TCRParen},
	{pattern: regexp.MustCompile(`^"[^"]*"`), class: TCString},
	{pattern: regexp.MustCompile(`^[A-Za-z_][A-Za-z_]*`), class: TCIdent},
}

// Lex tokenizes the given source text. In this module it is called on the
// filter-predicate body of one extract statement; the high-level and
// action-block layers scan raw text with fe's cursor instead. It never returns a nil error together with a
// non-nil *SyntaxError; on a lexical failure it returns a SyntaxError
// naming the offending position.
func Lex(source string) ([]Token, error) {
	var toks []Token

	lines := strings.Split(source, "\n")
	line, col := 1, 1
	remaining := source
	consumed := 0

	lineOf := func(n int) string {
		if n-1 < len(lines) {
			return lines[n-1]
		}
		return ""
	}

	for len(remaining) > 0 {
		matched := false
		for _, r := range rules {
			loc := r.pattern.FindStringIndex(remaining)
			if loc == nil || loc[0] != 0 {
				continue
			}
			lexeme := remaining[:loc[1]]
			if r.class.id != "" {
				toks = append(toks, Token{
					Lexeme:   lexeme,
					Class:    r.class,
					Line:     line,
					Col:      col,
					FullLine: lineOf(line),
				})
			}

			advanceLine, advanceCol := advancePosition(lexeme, col)
			if advanceLine > 0 {
				line += advanceLine
				col = advanceCol
			} else {
				col = advanceCol
			}

			remaining = remaining[loc[1]:]
			consumed += loc[1]
			matched = true
			break
		}
		if !matched {
			return nil, &SyntaxError{
				Line:             line,
				Column:           col,
				OffendingContext: firstRune(remaining),
				SourceLine:       lineOf(line),
				Msg:              "unrecognized input",
			}
		}
	}

	toks = append(toks, Token{Class: TCEndText, Line: line, Col: col, FullLine: lineOf(line)})
	return toks, nil
}

// advancePosition returns how many newlines the lexeme crossed and the
// resulting column. If no newline was crossed, the first return is 0 and
// the second is the updated column on the same line.
func advancePosition(lexeme string, startCol int) (linesCrossed int, col int) {
	nl := strings.Count(lexeme, "\n")
	if nl == 0 {
		return 0, startCol + len(lexeme)
	}
	last := strings.LastIndex(lexeme, "\n")
	return nl, len(lexeme) - last
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// IdentClass resolves which TokenClass an IDENT lexeme actually denotes: one
// of the reserved keywords, or a plain identifier.
func IdentClass(tok Token) TokenClass {
	if tok.Class.ID() != TCIdent.ID() {
		return tok.Class
	}
	if kw, ok := keywords[strings.ToLower(tok.Lexeme)]; ok {
		return kw
	}
	return TCIdent
}
