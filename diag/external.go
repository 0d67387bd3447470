// Package diag holds the two disjoint diagnostic taxonomies the core can
// raise: ExternalDiagnostic for malformed input scripts, and
// InternalDiagnostic for violated compiler invariants. The split exists so a
// host can report "your script is wrong" and "this compiler has a bug"
// differently, as the spec's error-handling design requires.
package diag

import (
	"fmt"
	"strings"

	"github.com/dekarrin/extractql/grammar"
	"github.com/dekarrin/extractql/internal/util"
	"github.com/dekarrin/rosed"
)

// ExternalDiagnostic is raised when the input script itself is malformed.
// It is always one of the concrete kinds below, distinguished by Kind.
type ExternalDiagnostic struct {
	Kind  ExternalKind
	msg   string
	cause error

	// Syntax error fields, valid when Kind == KindSyntaxError.
	Line             int
	Column           int
	OffendingContext string
	Expected         []string

	// MultipleTargetListDefinitions fields.
	Kept     string
	Rejected []string

	// ConflictingActionKinds / UnknownActionKind fields.
	Statement string
	Claimants []string

	// UnknownAtomicValueShape fields.
	FilterType string
	Raw        string
}

type ExternalKind int

const (
	KindSyntaxError ExternalKind = iota
	KindMultipleTargetListDefinitions
	KindBadExtractStatement
	KindUnknownActionKind
	KindConflictingActionKinds
	KindUnknownAtomicValueShape
	KindUndeclaredTargetAlias
)

func (k ExternalKind) String() string {
	switch k {
	case KindSyntaxError:
		return "SyntaxError"
	case KindMultipleTargetListDefinitions:
		return "MultipleTargetListDefinitions"
	case KindBadExtractStatement:
		return "BadExtractStatement"
	case KindUnknownActionKind:
		return "UnknownActionKind"
	case KindConflictingActionKinds:
		return "ConflictingActionKinds"
	case KindUnknownAtomicValueShape:
		return "UnknownAtomicValueShape"
	case KindUndeclaredTargetAlias:
		return "UndeclaredTargetAlias"
	default:
		return "ExternalDiagnostic"
	}
}

func (e *ExternalDiagnostic) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *ExternalDiagnostic) Unwrap() error { return e.cause }

// Is reports whether target is an ExternalDiagnostic of the same Kind,
// letting callers write checks such as
// errors.Is(err, &diag.ExternalDiagnostic{Kind: diag.KindBadExtractStatement})
// against an otherwise-empty sentinel of the kind they care about.
func (e *ExternalDiagnostic) Is(target error) bool {
	other, ok := target.(*ExternalDiagnostic)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// MessageForFile renders the diagnostic as one message prefixed with file
// (and, for a syntax error, line:column), followed for a syntax error by its
// expected-token list, wrapped at 100 columns with rosed. The offending
// source text itself is not included.
func (e *ExternalDiagnostic) MessageForFile(file string) string {
	var sb strings.Builder
	if file != "" {
		sb.WriteString(file)
		if e.Kind == KindSyntaxError {
			fmt.Fprintf(&sb, ":%d:%d", e.Line, e.Column)
		}
		sb.WriteString(": ")
	}
	sb.WriteString(e.Error())
	if e.Kind == KindSyntaxError && len(e.Expected) > 0 {
		fmt.Fprintf(&sb, " (expected %s)", util.MakeTextList(e.Expected))
	}

	body := sb.String()
	return rosed.Edit(body).Wrap(100).String()
}

// NewSyntaxError lifts a raw *grammar.SyntaxError (the structured record the
// grammar runtime returns) into the external-diagnostic taxonomy.
func NewSyntaxError(ge *grammar.SyntaxError) *ExternalDiagnostic {
	return &ExternalDiagnostic{
		Kind:             KindSyntaxError,
		msg:              ge.Error(),
		Line:             ge.Line,
		Column:           ge.Column,
		OffendingContext: ge.OffendingContext,
		Expected:         ge.ExpectedRules(),
	}
}

// NewMultipleTargetListDefinitions reports more than one `targets = [...]`
// header in a single script. kept is rendered as the winning (first)
// definition's source text; rejected holds the source text of every
// subsequent one.
func NewMultipleTargetListDefinitions(kept string, rejected []string) *ExternalDiagnostic {
	return &ExternalDiagnostic{
		Kind:     KindMultipleTargetListDefinitions,
		msg:      fmt.Sprintf("multiple target list definitions found (%d total)", 1+len(rejected)),
		Kept:     kept,
		Rejected: rejected,
	}
}

// NewBadExtractStatement reports a statement starting with "extract" that
// matches neither the extract-where nor extract-from-where metadata regex.
func NewBadExtractStatement(statement string) *ExternalDiagnostic {
	return &ExternalDiagnostic{
		Kind:      KindBadExtractStatement,
		msg:       "malformed extract statement",
		Statement: statement,
	}
}

// NewUnknownActionKind reports that no registered classifier claimed a
// statement.
func NewUnknownActionKind(statement string) *ExternalDiagnostic {
	return &ExternalDiagnostic{
		Kind:      KindUnknownActionKind,
		msg:       "no action kind recognizes this statement",
		Statement: statement,
	}
}

// NewConflictingActionKinds reports that more than one registered
// classifier claimed the same statement.
func NewConflictingActionKinds(statement string, claimants []string) *ExternalDiagnostic {
	return &ExternalDiagnostic{
		Kind:      KindConflictingActionKinds,
		msg:       fmt.Sprintf("statement is ambiguous between action kinds: %s", strings.Join(claimants, ", ")),
		Statement: statement,
		Claimants: claimants,
	}
}

// NewUndeclaredTargetAlias reports an action block whose head names a
// target alias absent from the script's `targets = [...]` header.
func NewUndeclaredTargetAlias(alias string) *ExternalDiagnostic {
	return &ExternalDiagnostic{
		Kind:      KindUndeclaredTargetAlias,
		msg:       fmt.Sprintf("action block references undeclared target %q", alias),
		Statement: alias,
	}
}

// NewUnknownAtomicValueShape reports that an atomic filter's value did not
// match any row of the normalization table for its filter_type.
func NewUnknownAtomicValueShape(filterType, raw string) *ExternalDiagnostic {
	return &ExternalDiagnostic{
		Kind:       KindUnknownAtomicValueShape,
		msg:        fmt.Sprintf("%q is not a recognized %s value", raw, filterType),
		FilterType: filterType,
		Raw:        raw,
	}
}
