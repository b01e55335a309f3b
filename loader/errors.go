package loader

import (
	"errors"
	"fmt"
)

// Kind classifies load failures.
type Kind int

const (
	KindIO Kind = iota + 1
	KindSyntax
	KindState
	KindWrongDataStructure
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "i/o error"
	case KindSyntax:
		return "syntax error"
	case KindState:
		return "state error"
	case KindWrongDataStructure:
		return "wrong data structure"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var (
	ErrAmbiguousEntity = errors.New("ambiguous entity name")
	ErrNoSuchEntity    = errors.New("no such entity")
)

// Error describes why a document failed to load.
type Error struct {
	Kind     Kind
	Document string
	// 1-based line of the offending node, 0 when unknown
	Line int
	Err  error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s:%d: %s: %v", e.Document, e.Line, e.Kind, e.Err)
	}
	return fmt.Sprintf("load %s: %s: %v", e.Document, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a load Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var le *Error
	return errors.As(err, &le) && le.Kind == kind
}
