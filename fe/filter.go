package fe

import (
	"regexp"
	"strings"

	"github.com/dekarrin/extractql/ast"
	"github.com/dekarrin/extractql/diag"
	"github.com/dekarrin/extractql/grammar"
)

// extractStmtRE pulls the three metadata components out of a raw extract
// statement: an optional `from ALIAS`, the filter expression body, and the
// `-> OUT` assignment (the terminating ';' is matched outside the out group,
// so the assignment never includes it). Matching happens before any
// tokenization so a malformed statement that doesn't even have this shape
// can be reported via diag.NewBadExtractStatement without ever reaching the
// predicate grammar.
var extractStmtRE = regexp.MustCompile(`(?s)^extract` +
	`(?:\s+from\s+(?P<alias>[A-Za-z_][A-Za-z_]*))?` +
	`\s+where\s+(?P<filter>.+?)` +
	`\s*->\s*(?P<out>[A-Za-z_][A-Za-z_]*)\s*;\s*$`)

// ParseFilterAction runs the §4.5 filter grammar over one raw statement
// (as produced by SplitStatements, terminating ';' included): it extracts
// the from-alias and assignment metadata by regex, then recursive-descent
// parses the filter expression body into a Filter tree.
func ParseFilterAction(statement string) (ast.FilterAction, error) {
	trimmed := strings.TrimSpace(statement)
	m := extractStmtRE.FindStringSubmatch(trimmed)
	if m == nil {
		return ast.FilterAction{}, diag.NewBadExtractStatement(trimmed)
	}

	names := extractStmtRE.SubexpNames()
	group := make(map[string]string, len(names))
	for i, name := range names {
		if name != "" && i < len(m) {
			group[name] = m[i]
		}
	}

	rt := grammar.Compiled("filter")
	toks, err := rt.Lex(group["filter"])
	if err != nil {
		return ast.FilterAction{}, liftParseErr(err)
	}
	ts := grammar.NewTokenStream(toks)

	root, err := parseOrExpr(ts)
	if err != nil {
		return ast.FilterAction{}, liftParseErr(err)
	}
	if ts.PeekClass().ID() != grammar.TCEndText.ID() {
		tok := ts.Peek()
		return ast.FilterAction{}, diag.NewSyntaxError(&grammar.SyntaxError{
			Line: tok.Line, Column: tok.Col,
			Rule: "filter_expr",
			Msg:  "unexpected trailing input after filter expression",
		})
	}

	return ast.FilterAction{
		Metadata: ast.FilterActionMetadata{
			FromAlias:  group["alias"],
			RawFilter:  strings.TrimSpace(group["filter"]),
			Assignment: group["out"],
		},
		Root: root,
	}, nil
}

// --- boolean combinator grammar: or_expr / and_expr / not_expr / atom ---

func parseOrExpr(ts *grammar.TokenStream) (ast.Filter, error) {
	left, err := parseAndExpr(ts)
	if err != nil {
		return nil, err
	}
	operands := []ast.Filter{left}
	src := left.Source()
	for {
		if _, ok := ts.Accept(grammar.TCOrKw); !ok {
			break
		}
		next, err := parseAndExpr(ts)
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return left, nil
	}
	return ast.OperatorNode{Op: ast.OpOr, Operands: operands, Src: src}, nil
}

func parseAndExpr(ts *grammar.TokenStream) (ast.Filter, error) {
	left, err := parseNotExpr(ts)
	if err != nil {
		return nil, err
	}
	operands := []ast.Filter{left}
	src := left.Source()
	for {
		if _, ok := ts.Accept(grammar.TCAndKw); !ok {
			break
		}
		next, err := parseNotExpr(ts)
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return left, nil
	}
	return ast.OperatorNode{Op: ast.OpAnd, Operands: operands, Src: src}, nil
}

func parseNotExpr(ts *grammar.TokenStream) (ast.Filter, error) {
	if tok, ok := ts.Accept(grammar.TCNotKw); ok {
		operand, err := parseNotExpr(ts)
		if err != nil {
			return nil, err
		}
		return ast.OperatorNode{Op: ast.OpNot, Operands: []ast.Filter{operand}, Src: tok}, nil
	}
	return parseAtom(ts)
}

func parseAtom(ts *grammar.TokenStream) (ast.Filter, error) {
	if _, ok := ts.Accept(grammar.TCLParen); ok {
		inner, err := parseOrExpr(ts)
		if err != nil {
			return nil, err
		}
		if _, err := ts.Expect(grammar.TCRParen, "filter_expr"); err != nil {
			return nil, err
		}
		return inner, nil
	}

	switch ts.PeekClass().ID() {
	case grammar.TCTagKw.ID():
		tok := ts.Next()
		items, err := parseTagValue(ts)
		if err != nil {
			return nil, err
		}
		return ast.AtomicNode{FilterType: ast.FilterTag, Items: items, Src: tok}, nil
	case grammar.TCTextKw.ID():
		tok := ts.Next()
		items, err := parseTextValue(ts)
		if err != nil {
			return nil, err
		}
		return ast.AtomicNode{FilterType: ast.FilterText, Items: items, Src: tok}, nil
	case grammar.TCAttributeKw.ID():
		tok := ts.Next()
		attrs, err := parseAttributeFilter(ts)
		if err != nil {
			return nil, err
		}
		return ast.AtomicNode{FilterType: ast.FilterAttribute, Attrs: attrs, Src: tok}, nil
	default:
		tok := ts.Peek()
		return nil, &grammar.SyntaxError{
			Line: tok.Line, Column: tok.Col,
			Rule: "atomic_predicate",
			Expected: map[string]bool{
				grammar.TCTagKw.Human():       true,
				grammar.TCTextKw.Human():      true,
				grammar.TCAttributeKw.Human(): true,
				grammar.TCLParen.Human():      true,
				grammar.TCNotKw.Human():       true,
			},
			Msg: "expected a filter atom or '('",
		}
	}
}

// --- §4.5.3 atomic-value normalization ---

// parseTagValue implements `tag_filter := "tag" (STRING | options | "any")`,
// normalizing directly to the table's Items shape: "any" is the empty list,
// a bare STRING is a one-element list, and options is itself the list.
func parseTagValue(ts *grammar.TokenStream) ([]ast.Value, error) {
	switch ts.PeekClass().ID() {
	case grammar.TCAnyKw.ID():
		ts.Next()
		return nil, nil
	case grammar.TCString.ID():
		tok := ts.Next()
		return []ast.Value{ast.StringValue(tok.Unquote())}, nil
	case grammar.TCLBrack.ID():
		strs, err := parseOptions(ts)
		if err != nil {
			return nil, err
		}
		return stringsToValues(strs), nil
	default:
		return nil, atomValueError(ts, "tag")
	}
}

// parseTextValue implements `text_filter := "text" (contains_text | STRING |
// options)`. Unlike tag_filter, bare "any" is not part of the table.
func parseTextValue(ts *grammar.TokenStream) ([]ast.Value, error) {
	switch ts.PeekClass().ID() {
	case grammar.TCContainsKw.ID():
		ts.Next()
		inner, err := parseContainsOperand(ts)
		if err != nil {
			return nil, err
		}
		return []ast.Value{ast.ContainsValue(inner)}, nil
	case grammar.TCString.ID():
		tok := ts.Next()
		return []ast.Value{ast.StringValue(tok.Unquote())}, nil
	case grammar.TCLBrack.ID():
		strs, err := parseOptions(ts)
		if err != nil {
			return nil, err
		}
		return stringsToValues(strs), nil
	default:
		return nil, atomValueError(ts, "text")
	}
}

// parseAttributeFilter implements `attribute_filter := "attribute" (pair |
// "[" pair ("," pair)* "]")`.
func parseAttributeFilter(ts *grammar.TokenStream) (map[string]ast.Value, error) {
	attrs := map[string]ast.Value{}
	if _, ok := ts.Accept(grammar.TCLBrack); ok {
		for {
			key, val, err := parsePair(ts)
			if err != nil {
				return nil, err
			}
			attrs[key] = val
			if _, ok := ts.Accept(grammar.TCComma); ok {
				continue
			}
			break
		}
		if _, err := ts.Expect(grammar.TCRBrack, "attribute_filter"); err != nil {
			return nil, err
		}
		return attrs, nil
	}

	key, val, err := parsePair(ts)
	if err != nil {
		return nil, err
	}
	attrs[key] = val
	return attrs, nil
}

// parsePair implements `pair := (STRING | "any") ":" attr_value`. A literal
// "any" key is normalized to the string "any": the grammar permits an
// unconstrained key, and nothing downstream distinguishes it from a literal
// attribute named "any", so it is carried through as one.
func parsePair(ts *grammar.TokenStream) (string, ast.Value, error) {
	var key string
	switch ts.PeekClass().ID() {
	case grammar.TCString.ID():
		key = ts.Next().Unquote()
	case grammar.TCAnyKw.ID():
		key = ts.Next().Lexeme
	default:
		tok := ts.Peek()
		return "", ast.Value{}, &grammar.SyntaxError{
			Line: tok.Line, Column: tok.Col,
			Rule: "pair",
			Expected: map[string]bool{
				grammar.TCString.Human(): true,
				grammar.TCAnyKw.Human():  true,
			},
			Msg: "expected an attribute key (string or 'any')",
		}
	}

	if _, err := ts.Expect(grammar.TCColon, "pair"); err != nil {
		return "", ast.Value{}, err
	}

	val, err := parseAttrValue(ts)
	if err != nil {
		return "", ast.Value{}, err
	}
	return key, val, nil
}

// parseAttrValue implements `attr_value := contains_attr | options | STRING
// | "any"`.
func parseAttrValue(ts *grammar.TokenStream) (ast.Value, error) {
	switch ts.PeekClass().ID() {
	case grammar.TCContainsKw.ID():
		ts.Next()
		inner, err := parseContainsOperand(ts)
		if err != nil {
			return ast.Value{}, err
		}
		return ast.ContainsValue(inner), nil
	case grammar.TCAnyKw.ID():
		ts.Next()
		return ast.ListValue(nil), nil
	case grammar.TCString.ID():
		tok := ts.Next()
		return ast.StringValue(tok.Unquote()), nil
	case grammar.TCLBrack.ID():
		strs, err := parseOptions(ts)
		if err != nil {
			return ast.Value{}, err
		}
		return ast.ListValue(strs), nil
	default:
		return ast.Value{}, atomValueError(ts, "attribute")
	}
}

// parseContainsOperand implements the shared `"contains" (STRING |
// options)` production used by contains_attr and contains_text.
func parseContainsOperand(ts *grammar.TokenStream) (ast.Value, error) {
	switch ts.PeekClass().ID() {
	case grammar.TCString.ID():
		tok := ts.Next()
		return ast.StringValue(tok.Unquote()), nil
	case grammar.TCLBrack.ID():
		strs, err := parseOptions(ts)
		if err != nil {
			return ast.Value{}, err
		}
		return ast.ListValue(strs), nil
	default:
		tok := ts.Peek()
		return ast.Value{}, &grammar.SyntaxError{
			Line: tok.Line, Column: tok.Col,
			Rule: "contains",
			Msg:  "expected a string or a bracketed list after 'contains'",
		}
	}
}

// parseOptions implements `options := "[" STRING ("," STRING)* "]"`
// (requiring at least one element; the grammar's note that a single element
// is also accepted falls out of using `*` rather than `+` here).
func parseOptions(ts *grammar.TokenStream) ([]string, error) {
	if _, err := ts.Expect(grammar.TCLBrack, "options"); err != nil {
		return nil, err
	}
	var items []string
	for {
		tok, err := ts.Expect(grammar.TCString, "options")
		if err != nil {
			return nil, err
		}
		items = append(items, tok.Unquote())
		if _, ok := ts.Accept(grammar.TCComma); ok {
			continue
		}
		break
	}
	if _, err := ts.Expect(grammar.TCRBrack, "options"); err != nil {
		return nil, err
	}
	return items, nil
}

// liftParseErr lifts a raw *grammar.SyntaxError into the external-diagnostic
// taxonomy. Errors that are already a *diag.ExternalDiagnostic (raised
// directly by the atomic-value-table functions below) pass through
// unchanged instead of being double-wrapped.
func liftParseErr(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*diag.ExternalDiagnostic); ok {
		return err
	}
	if ge, ok := err.(*grammar.SyntaxError); ok {
		return diag.NewSyntaxError(ge)
	}
	return err
}

func stringsToValues(strs []string) []ast.Value {
	vals := make([]ast.Value, len(strs))
	for i, s := range strs {
		vals[i] = ast.StringValue(s)
	}
	return vals
}

// atomValueError reports that the token stream's current position matches
// no row of the §4.5.3 atomic-value normalization table for filterType. This
// is an ExternalDiagnostic in its own right (KindUnknownAtomicValueShape),
// distinct from a structural grammar.SyntaxError: the tokens are
// individually well-formed, they just don't assemble into any value shape
// the table recognizes for this filter type.
func atomValueError(ts *grammar.TokenStream, filterType string) error {
	tok := ts.Peek()
	return diag.NewUnknownAtomicValueShape(filterType, tok.Lexeme)
}
