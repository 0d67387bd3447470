package ast

// ActionType is the stable tag used as the action registry key. It is
// modeled as a distinct string newtype (rather than a bare string compared
// with custom equality) so that equality and hashing are just the wrapped
// value's, per the design notes' guidance on action_type.
type ActionType string

const ActionTypeFilter ActionType = "filter"

// Action is one statement within an ActionBlock. It is a tagged sum with
// one variant per action kind; today that is only Filter, but the shape
// mirrors Filter's own operator/atomic split so a second kind can be added
// as another struct implementing this interface plus its own registry
// entry, without touching existing variants.
type Action interface {
	Type() ActionType
	AsFilterAction() FilterAction
}

// FilterActionMetadata holds the metadata every filter action carries,
// promoted to named fields rather than an ad-hoc string-keyed map.
type FilterActionMetadata struct {
	FromAlias  string
	RawFilter  string
	Assignment string
}

// FilterAction is the Filter variant of Action: an `extract [from ALIAS]
// where ... -> OUT;` statement.
type FilterAction struct {
	Metadata FilterActionMetadata
	Root     Filter
}

func (a FilterAction) Type() ActionType            { return ActionTypeFilter }
func (a FilterAction) AsFilterAction() FilterAction { return a }
