// Package errors implements the interpreter's typed error taxonomy: a
// small struct carrying a category, a message and optional context,
// rendered as a single line for the driver to print.
package errors

import "fmt"

// Kind categorizes a failure.
type Kind string

const (
	KindReaderRanOut  Kind = "READER_RAN_OUT"
	KindReaderBadForm Kind = "READER_BAD_FORM"
	KindUnknownSymbol Kind = "UNKNOWN_SYMBOL"
	KindArityError    Kind = "ARITY_ERROR"
	KindTypeError     Kind = "TYPE_ERROR"
	KindNotCallable   Kind = "NOT_CALLABLE"
	KindArgShape      Kind = "ARG_SHAPE"
	KindDivide        Kind = "DIVIDE_ERROR"
)

// WispError is the structured error every reader/evaluator failure
// unwinds as. Position is the reader cursor offset for reader errors, or
// 0 for errors raised elsewhere in the pipeline.
type WispError struct {
	Kind     Kind
	Message  string
	Position int
	Context  map[string]interface{}
	// Snip is an optional source-context window around Position, set by
	// the reader. It is not part of the default single-line rendering;
	// a driver may call Snippet() to show it.
	Snip string
}

// Error implements the error interface with the single-line
// "<position>: <message>" form.
func (e *WispError) Error() string {
	return fmt.Sprintf("%d: %s", e.Position, e.Message)
}

// Snippet returns the position-annotated message plus the source-context
// window, if one was recorded. Not used by default rendering; available
// for a richer REPL display.
func (e *WispError) Snippet() string {
	if e.Snip == "" {
		return e.Error()
	}
	return fmt.Sprintf("%s\n%s", e.Error(), e.Snip)
}

// New creates a WispError with no position or context.
func New(kind Kind, message string) *WispError {
	return &WispError{Kind: kind, Message: message, Context: make(map[string]interface{})}
}

// At creates a WispError anchored to a cursor position, with a short
// context window (used for ReaderRanOut / ReaderBadForm).
func At(kind Kind, message string, position int, snippet string) *WispError {
	return &WispError{Kind: kind, Message: message, Position: position, Context: make(map[string]interface{}), Snip: snippet}
}

// WithContext attaches a debugging key/value and returns the receiver for
// chaining.
func (e *WispError) WithContext(key string, v interface{}) *WispError {
	e.Context[key] = v
	return e
}

// Is reports whether err is a WispError of the given Kind.
func Is(err error, kind Kind) bool {
	we, ok := err.(*WispError)
	return ok && we.Kind == kind
}

// Constructors, one per failure category.

func ReaderRanOut(message string, position int, snippet string) *WispError {
	return At(KindReaderRanOut, message, position, snippet)
}

func ReaderBadForm(message string, position int, snippet string) *WispError {
	return At(KindReaderBadForm, message, position, snippet)
}

func UnknownSymbol(name string, suggestion string) *WispError {
	msg := fmt.Sprintf("unknown symbol: %s", name)
	if suggestion != "" {
		msg = fmt.Sprintf("%s (did you mean %s?)", msg, suggestion)
	}
	return New(KindUnknownSymbol, msg).WithContext("symbol", name)
}

func ArityError(what string, want string, got int) *WispError {
	return New(KindArityError, fmt.Sprintf("%s: expected %s argument(s), got %d", what, want, got)).
		WithContext("expected", want).WithContext("got", got)
}

func TypeError(what string, position int, message string) *WispError {
	return New(KindTypeError, fmt.Sprintf("%s: %s", what, message)).WithContext("position", position)
}

func NotCallable(message string) *WispError {
	return New(KindNotCallable, message)
}

func ArgShape(message string) *WispError {
	return New(KindArgShape, message)
}

func Divide(message string) *WispError {
	return New(KindDivide, message)
}
