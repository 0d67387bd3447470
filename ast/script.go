package ast

// TargetEntry is one alias-to-URL binding from a script's `targets = [...]`
// header.
type TargetEntry struct {
	Alias string
	URL   string
}

// OrderedTargets is an insertion-ordered alias -> URL mapping. Order is
// significant: it is the canonical execution priority the lowering pass
// sorts action blocks by.
type OrderedTargets struct {
	entries []TargetEntry
	index   map[string]int
}

// NewOrderedTargets returns an empty OrderedTargets ready for Set calls.
func NewOrderedTargets() *OrderedTargets {
	return &OrderedTargets{index: map[string]int{}}
}

// Set records alias -> url. If alias was already present its URL is
// updated in place without disturbing its original position, matching the
// insertion-order contract.
func (t *OrderedTargets) Set(alias, url string) {
	if i, ok := t.index[alias]; ok {
		t.entries[i].URL = url
		return
	}
	t.index[alias] = len(t.entries)
	t.entries = append(t.entries, TargetEntry{Alias: alias, URL: url})
}

// Get returns the URL bound to alias and whether it was present.
func (t *OrderedTargets) Get(alias string) (string, bool) {
	i, ok := t.index[alias]
	if !ok {
		return "", false
	}
	return t.entries[i].URL, true
}

// Index returns alias's position in declaration order.
func (t *OrderedTargets) Index(alias string) (int, bool) {
	i, ok := t.index[alias]
	return i, ok
}

// Len returns the number of declared targets.
func (t *OrderedTargets) Len() int { return len(t.entries) }

// Entries returns the targets in declaration order. The returned slice is a
// copy; mutating it does not affect the OrderedTargets.
func (t *OrderedTargets) Entries() []TargetEntry {
	out := make([]TargetEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// ActionBlock attaches an ordered sequence of actions to one previously
// declared target alias.
type ActionBlock struct {
	Target  string
	Actions []Action
}

// ScriptTree is the root AST: the declared targets plus the ordered action
// blocks that reference them.
type ScriptTree struct {
	Targets      *OrderedTargets
	ActionBlocks []ActionBlock
}
