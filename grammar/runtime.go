package grammar

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Runtime is the compiled form of one of the three grammars (high-level,
// action-block, filter-predicate). Construction is cheap here because the
// lexical rule table is a package-level constant, but the Runtime still
// stands in for "the compiled grammar" the rest of the core is handed,
// matching the separation the spec draws between the grammar runtime and
// the grammars built on top of it — and giving callers a stable identity to
// cache on, the way a generated-parser-table lookup would.
type Runtime struct {
	Name string
}

// runtimeCache amortizes Runtime construction across repeated compilations,
// the way a read-through cache keyed by identity amortizes any other
// expensive-to-build, identity-stable object.
var runtimeCache = mustNewCache()

func mustNewCache() *lru.Cache[string, *Runtime] {
	c, err := lru.New[string, *Runtime](8)
	if err != nil {
		// only fails for a non-positive size, which is a programming error.
		panic(err)
	}
	return c
}

// Compiled returns the cached Runtime for the named grammar, building and
// caching it on first use. Concurrent calls are safe: golang-lru's Cache
// is internally synchronized.
func Compiled(name string) *Runtime {
	if rt, ok := runtimeCache.Get(name); ok {
		return rt
	}
	rt := &Runtime{Name: name}
	runtimeCache.Add(name, rt)
	return rt
}

// Lex tokenizes source using the shared lexical rule table. It is a method
// on Runtime (rather than a bare package function) so that grammar-specific
// parsers go through the cached, identity-stable runtime rather than each
// re-deriving their own lexer.
func (rt *Runtime) Lex(source string) ([]Token, error) {
	return Lex(source)
}
