package fe

import (
	"testing"

	"github.com/dekarrin/extractql/ast"
	"github.com/stretchr/testify/assert"
)

func Test_Dispatch_filter(t *testing.T) {
	assert := assert.New(t)

	action, err := Dispatch(`extract where tag "div" -> x;`)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(ast.ActionTypeFilter, action.Type())
}

func Test_Dispatch_unknownKind(t *testing.T) {
	assert := assert.New(t)

	_, err := Dispatch(`launch missiles -> x;`)
	assert.Error(err)
}
