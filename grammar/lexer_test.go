package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Lex(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []TokenClass
	}{
		{
			name:   "keywords and punctuation",
			input:  `tag "div" and not attribute: ;`,
			expect: []TokenClass{TCIdent, TCString, TCIdent, TCIdent, TCIdent, TCColon, TCSemi, TCEndText},
		},
		{
			name:   "arrow and brackets",
			input:  `[a, b] -> out`,
			expect: []TokenClass{TCLBrack, TCIdent, TCComma, TCIdent, TCRBrack, TCArrow, TCIdent, TCEndText},
		},
		{
			name:   "comment is discarded",
			input:  "tag // a comment\n\"x\"",
			expect: []TokenClass{TCIdent, TCString, TCEndText},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			toks, err := Lex(tc.input)
			if !assert.NoError(err) {
				return
			}

			actual := make([]TokenClass, len(toks))
			for i, tok := range toks {
				actual[i] = tok.Class
			}
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Lex_unrecognizedInput(t *testing.T) {
	assert := assert.New(t)

	_, err := Lex("tag @oops")
	if !assert.Error(err) {
		return
	}

	synErr, ok := err.(*SyntaxError)
	if !assert.True(ok, "expected *SyntaxError") {
		return
	}
	assert.Equal(1, synErr.Line)
}

func Test_IdentClass_resolvesKeywords(t *testing.T) {
	assert := assert.New(t)

	toks, err := Lex("tag notakeyword")
	if !assert.NoError(err) {
		return
	}

	assert.True(IdentClass(toks[0]).Equal(TCTagKw))
	assert.True(IdentClass(toks[1]).Equal(TCIdent))
}
