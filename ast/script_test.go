package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_OrderedTargets_preservesInsertionOrder(t *testing.T) {
	assert := assert.New(t)

	targets := NewOrderedTargets()
	targets.Set("B", "u2")
	targets.Set("A", "u1")
	targets.Set("B", "u2-updated")

	entries := targets.Entries()
	if !assert.Len(entries, 2) {
		return
	}
	assert.Equal(TargetEntry{Alias: "B", URL: "u2-updated"}, entries[0])
	assert.Equal(TargetEntry{Alias: "A", URL: "u1"}, entries[1])

	idx, ok := targets.Index("A")
	assert.True(ok)
	assert.Equal(1, idx)

	_, ok = targets.Index("missing")
	assert.False(ok)
}

func Test_OrderedTargets_Get(t *testing.T) {
	assert := assert.New(t)

	targets := NewOrderedTargets()
	targets.Set("A", "u1")

	url, ok := targets.Get("A")
	assert.True(ok)
	assert.Equal("u1", url)

	_, ok = targets.Get("B")
	assert.False(ok)
}
