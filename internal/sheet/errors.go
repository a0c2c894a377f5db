package sheet

import "fmt"

// ComputeErrorKind enumerates the closed set of error kinds a cell's
// computed value can carry. Only the kind is part of the contract; the
// message text returned by Error() is for humans and may change.
type ComputeErrorKind uint8

const (
	KindParseError ComputeErrorKind = iota + 1
	KindTypeError
	KindUnfindableReference
	KindCycle
	KindUnknownFunction
	KindInvalidArgument
)

var kindNames = map[ComputeErrorKind]string{
	KindParseError:          "ParseError",
	KindTypeError:           "TypeError",
	KindUnfindableReference: "UnfindableReference",
	KindCycle:               "Cycle",
	KindUnknownFunction:     "UnknownFunction",
	KindInvalidArgument:     "InvalidArgument",
}

func (k ComputeErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UnknownErrorKind"
}

// ComputeError is the closed error taxonomy a cell's computed result may
// hold. It implements error so it can be wrapped/compared with the standard
// library, but callers that need to branch on the failure should use Kind,
// not string matching against Error().
type ComputeError struct {
	kind ComputeErrorKind
	msg  string
}

func (e *ComputeError) Error() string {
	if e.msg != "" {
		return fmt.Sprintf("%s: %s", e.kind, e.msg)
	}
	return e.kind.String()
}

// Kind reports the closed error variant, the only part of a ComputeError
// that is part of the public contract.
func (e *ComputeError) Kind() ComputeErrorKind {
	return e.kind
}

// Is lets errors.Is match two ComputeErrors of the same kind, ignoring
// message text. Cycle carries no message and is always a singleton match.
func (e *ComputeError) Is(target error) bool {
	other, ok := target.(*ComputeError)
	if !ok {
		return false
	}
	return e.kind == other.kind
}

func newParseError(format string, args ...any) *ComputeError {
	return &ComputeError{kind: KindParseError, msg: fmt.Sprintf(format, args...)}
}

func newTypeError(format string, args ...any) *ComputeError {
	return &ComputeError{kind: KindTypeError, msg: fmt.Sprintf(format, args...)}
}

func newUnfindableReference(format string, args ...any) *ComputeError {
	return &ComputeError{kind: KindUnfindableReference, msg: fmt.Sprintf(format, args...)}
}

func newCycleError() *ComputeError {
	return &ComputeError{kind: KindCycle}
}

func newUnknownFunction(name string) *ComputeError {
	return &ComputeError{kind: KindUnknownFunction, msg: name}
}

func newInvalidArgument(format string, args ...any) *ComputeError {
	return &ComputeError{kind: KindInvalidArgument, msg: fmt.Sprintf(format, args...)}
}

// ErrCycle is the canonical Cycle error value; every cell on (or downstream
// of) a cycle is set to this exact error so errors.Is(err, ErrCycle) works
// without needing a fresh allocation per cell.
var ErrCycle = newCycleError()
