package fe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SplitStatements(t *testing.T) {
	assert := assert.New(t)

	body := `{
		extract where tag "div" -> x;
		extract from x where attribute ["k1": "v1", "k2": "v2"] -> y; // a comment
	}`

	stmts, err := SplitStatements(body)
	if !assert.NoError(err) {
		return
	}
	if !assert.Len(stmts, 2) {
		return
	}
	assert.Contains(stmts[0], `tag "div"`)
	assert.Contains(stmts[1], `from x where`)
}

func Test_SplitStatements_danglingStatement(t *testing.T) {
	assert := assert.New(t)

	_, err := SplitStatements(`{ extract where tag "div" -> x }`)
	assert.Error(err)
}

func Test_SplitStatements_empty(t *testing.T) {
	assert := assert.New(t)

	stmts, err := SplitStatements(`{ }`)
	if !assert.NoError(err) {
		return
	}
	assert.Empty(stmts)
}
