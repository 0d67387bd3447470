package extractql

import (
	"testing"

	"github.com/dekarrin/extractql/diag"
	"github.com/stretchr/testify/assert"
)

func Test_Compile_scenario1(t *testing.T) {
	assert := assert.New(t)

	result, err := Compile(`
targets = [A: "u1"]
A: { extract where tag "div" -> out; }
`, "script1")
	if !assert.NoError(err) {
		return
	}

	if !assert.Len(result.InstructionList, 1) {
		return
	}
	assert.Equal("script1", result.Identifier)
	assert.Equal("u1", result.InstructionList[0].URL)
}

func Test_Compile_scenario6_multipleTargetLists(t *testing.T) {
	assert := assert.New(t)

	_, err := Compile(`
targets = [A: "u1"]
targets = [B: "u2"]
A: { extract where tag "div" -> x; }
`, "script6")
	if !assert.Error(err) {
		return
	}

	extErr, ok := err.(*diag.ExternalDiagnostic)
	if !assert.True(ok, "expected *diag.ExternalDiagnostic") {
		return
	}
	assert.Equal(diag.KindMultipleTargetListDefinitions, extErr.Kind)
}

func Test_ParseToAST_thenLower(t *testing.T) {
	assert := assert.New(t)

	tree, err := ParseToAST(`
targets = [A: "u1"]
A: { extract where tag "div" -> out; }
`)
	if !assert.NoError(err) {
		return
	}

	result, err := Lower(tree, "script-split")
	if !assert.NoError(err) {
		return
	}
	assert.Len(result.InstructionList, 1)
}
