package fault

import (
	"errors"
	"fmt"
)

// Kind identifies the error category.
type Kind int

const (
	// Configuration reports a bad user-supplied setting or reference.
	Configuration Kind = iota + 1
	// Precondition reports data that does not satisfy an operation's input requirements.
	Precondition
	// Consistency reports data whose internal bookkeeping disagrees beyond tolerance.
	Consistency
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case Precondition:
		return "precondition"
	case Consistency:
		return "consistency"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error carries a Kind and the operation that raised it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}

	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with kind and op. It returns nil if err is nil.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}

	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf formats a message and wraps it with kind and op.
// The format may use %w to keep a sentinel reachable via errors.Is.
func Newf(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}

	return 0
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Skippable reports whether a batch driver should skip the affected trace
// and continue. Configuration and precondition errors are skippable;
// consistency errors abort the operation on that trace or pair.
func Skippable(err error) bool {
	switch KindOf(err) {
	case Configuration, Precondition:
		return true
	default:
		return false
	}
}
