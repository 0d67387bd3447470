package grammar

// TokenStream is a cursor over a pre-lexed token slice, as used by the
// filter-predicate parser in package fe.
type TokenStream struct {
	toks []Token
	cur  int
}

// NewTokenStream wraps an already-lexed token slice (normally the output of
// Lex) for parsing.
func NewTokenStream(toks []Token) *TokenStream {
	return &TokenStream{toks: toks}
}

// Next returns the current token and advances the cursor. Once the stream is
// exhausted it keeps returning the trailing TCEndText token.
func (ts *TokenStream) Next() Token {
	t := ts.Peek()
	if ts.cur < len(ts.toks)-1 {
		ts.cur++
	}
	return t
}

// Peek returns the current token without advancing.
func (ts *TokenStream) Peek() Token {
	if ts.cur >= len(ts.toks) {
		return Token{Class: TCEndText}
	}
	return ts.toks[ts.cur]
}

// PeekClass reports the resolved class (keyword-aware) of the current token.
func (ts *TokenStream) PeekClass() TokenClass {
	return IdentClass(ts.Peek())
}

// Remaining is the number of tokens, including TCEndText, left unconsumed.
func (ts *TokenStream) Remaining() int {
	return len(ts.toks) - ts.cur
}

// Accept consumes and returns the current token if its resolved class
// matches want, else leaves the cursor untouched and returns false.
func (ts *TokenStream) Accept(want TokenClass) (Token, bool) {
	if ts.PeekClass().Equal(want) {
		return ts.Next(), true
	}
	return Token{}, false
}

// Expect is like Accept but returns a *SyntaxError naming want in the
// Expected set when the current token does not match.
func (ts *TokenStream) Expect(want TokenClass, rule string) (Token, error) {
	if tok, ok := ts.Accept(want); ok {
		return tok, nil
	}
	return Token{}, ts.unexpected(rule, want)
}

func (ts *TokenStream) unexpected(rule string, expected ...TokenClass) *SyntaxError {
	tok := ts.Peek()
	exp := make(map[string]bool, len(expected))
	for _, e := range expected {
		exp[e.Human()] = true
	}
	return &SyntaxError{
		Line:             tok.Line,
		Column:           tok.Col,
		OffendingContext: describeToken(tok),
		SourceLine:       tok.FullLine,
		Expected:         exp,
		Rule:             rule,
		Msg:              "unexpected " + describeToken(tok),
	}
}

func describeToken(tok Token) string {
	if tok.Class.ID() == TCEndText.ID() {
		return "end of input"
	}
	if tok.Lexeme == "" {
		return tok.Class.Human()
	}
	return tok.Lexeme
}
