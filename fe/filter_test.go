package fe

import (
	"testing"

	"github.com/dekarrin/extractql/ast"
	"github.com/stretchr/testify/assert"
)

func Test_ParseFilterAction(t *testing.T) {
	testCases := []struct {
		name           string
		statement      string
		expectFrom     string
		expectOut      string
		expectRootKind ast.FilterNodeKind
	}{
		{
			name:           "simple tag extract",
			statement:      `extract where tag "div" -> x;`,
			expectOut:      "x",
			expectRootKind: ast.FilterKindAtomic,
		},
		{
			name:           "extract from alias",
			statement:      `extract from prev where attribute "k": "v" -> y;`,
			expectFrom:     "prev",
			expectOut:      "y",
			expectRootKind: ast.FilterKindAtomic,
		},
		{
			name:           "and/not combination",
			statement:      `extract where tag "div" and not attribute "class":"ad" -> out;`,
			expectOut:      "out",
			expectRootKind: ast.FilterKindOperator,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			action, err := ParseFilterAction(tc.statement)
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expectFrom, action.Metadata.FromAlias)
			assert.Equal(tc.expectOut, action.Metadata.Assignment)
			assert.Equal(tc.expectRootKind, action.Root.Kind())
		})
	}
}

func Test_ParseFilterAction_scenario3(t *testing.T) {
	assert := assert.New(t)

	action, err := ParseFilterAction(`extract where tag "div" and not attribute "class":"ad" -> x;`)
	if !assert.NoError(err) {
		return
	}

	root := action.Root.AsOperator()
	assert.Equal(ast.OpAnd, root.Op)
	if !assert.Len(root.Operands, 2) {
		return
	}

	tagAtom := root.Operands[0].AsAtomic()
	assert.Equal(ast.FilterTag, tagAtom.FilterType)
	assert.True(ast.EqualValueList(tagAtom.Items, []ast.Value{ast.StringValue("div")}))

	notNode := root.Operands[1].AsOperator()
	assert.Equal(ast.OpNot, notNode.Op)
	if !assert.Len(notNode.Operands, 1) {
		return
	}
	attrAtom := notNode.Operands[0].AsAtomic()
	assert.Equal(ast.FilterAttribute, attrAtom.FilterType)
	assert.True(attrAtom.Attrs["class"].Equal(ast.StringValue("ad")))
}

func Test_ParseFilterAction_scenario4_textContainsList(t *testing.T) {
	assert := assert.New(t)

	action, err := ParseFilterAction(`extract where text contains ["foo","bar"] -> t;`)
	if !assert.NoError(err) {
		return
	}

	atom := action.Root.AsAtomic()
	assert.Equal(ast.FilterText, atom.FilterType)
	if !assert.Len(atom.Items, 1) {
		return
	}
	assert.Equal(ast.ShapeContains, atom.Items[0].Shape)
	assert.Equal(ast.ShapeList, atom.Items[0].Inner.Shape)
	assert.Equal([]string{"foo", "bar"}, atom.Items[0].Inner.List)
}

func Test_ParseFilterAction_scenario5_attributeList(t *testing.T) {
	assert := assert.New(t)

	action, err := ParseFilterAction(`extract from prev where attribute ["k1":"v1","k2": contains "v2"] -> y;`)
	if !assert.NoError(err) {
		return
	}

	assert.Equal("prev", action.Metadata.FromAlias)
	atom := action.Root.AsAtomic()
	assert.Equal(ast.FilterAttribute, atom.FilterType)
	assert.True(atom.Attrs["k1"].Equal(ast.StringValue("v1")))
	assert.True(atom.Attrs["k2"].Equal(ast.ContainsValue(ast.StringValue("v2"))))
}

func Test_ParseFilterAction_tagAny(t *testing.T) {
	assert := assert.New(t)

	action, err := ParseFilterAction(`extract where tag any -> x;`)
	if !assert.NoError(err) {
		return
	}

	atom := action.Root.AsAtomic()
	assert.Empty(atom.Items)
}

func Test_ParseFilterAction_malformed(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseFilterAction(`extract tag "div" -> x;`)
	assert.Error(err)
}
