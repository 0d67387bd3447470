package fe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseHighLevel(t *testing.T) {
	assert := assert.New(t)

	source := `
targets = [A: "u1", B: "u2"]

B: {
	extract where tag "div" -> x;
}

A: {
	extract where tag "span" -> y; // trailing comment
}
`

	targets, blocks, err := ParseHighLevel(source)
	if !assert.NoError(err) {
		return
	}

	entries := targets.Entries()
	if !assert.Len(entries, 2) {
		return
	}
	assert.Equal("A", entries[0].Alias)
	assert.Equal("u1", entries[0].URL)
	assert.Equal("B", entries[1].Alias)
	assert.Equal("u2", entries[1].URL)

	if !assert.Len(blocks, 2) {
		return
	}
	assert.Equal("B", blocks[0].Target)
	assert.Equal("A", blocks[1].Target)
	assert.Contains(blocks[0].Body, `tag "div"`)
}

func Test_ParseHighLevel_multipleTargetLists(t *testing.T) {
	assert := assert.New(t)

	source := `
targets = [A: "u1"]
targets = [B: "u2"]
A: { extract where tag "div" -> x; }
`
	_, _, err := ParseHighLevel(source)
	assert.Error(err)
}

func Test_ParseHighLevel_noTargetList(t *testing.T) {
	assert := assert.New(t)

	_, _, err := ParseHighLevel(`A: { extract where tag "div" -> x; }`)
	assert.Error(err)
}
