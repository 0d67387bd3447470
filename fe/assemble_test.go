package fe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_BuildScriptTree(t *testing.T) {
	assert := assert.New(t)

	source := `
targets = [A: "u1", B: "u2"]

B: {
	extract where tag "div" -> x;
}

A: {
	extract where tag "span" -> y;
	extract where tag "a" -> z;
}
`

	tree, err := BuildScriptTree(source)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(2, tree.Targets.Len())
	if !assert.Len(tree.ActionBlocks, 2) {
		return
	}
	assert.Equal("B", tree.ActionBlocks[0].Target)
	if !assert.Len(tree.ActionBlocks[0].Actions, 1) {
		return
	}
	assert.Equal("A", tree.ActionBlocks[1].Target)
	assert.Len(tree.ActionBlocks[1].Actions, 2)
}

func Test_BuildScriptTree_propagatesUndeclaredTargetUnvalidated(t *testing.T) {
	assert := assert.New(t)

	source := `
targets = [A: "u1"]

rogue: {
	extract where tag "div" -> x;
}
`
	tree, err := BuildScriptTree(source)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("rogue", tree.ActionBlocks[0].Target)
}
