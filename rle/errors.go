package rle

import "fmt"

// Kind identifies the category of a CodecError, per the error taxonomy
// the container format requires callers to distinguish.
type Kind int

const (
	IoError Kind = iota
	EmptyCreate
	NotRLE
	UnknownVariant
	Inefficient
	TableTooLarge
	LengthMismatch
	DecodeState
)

func (k Kind) String() string {
	switch k {
	case IoError:
		return "IoError"
	case EmptyCreate:
		return "EmptyCreate"
	case NotRLE:
		return "NotRLE"
	case UnknownVariant:
		return "UnknownVariant"
	case Inefficient:
		return "Inefficient"
	case TableTooLarge:
		return "TableTooLarge"
	case LengthMismatch:
		return "LengthMismatch"
	case DecodeState:
		return "DecodeState"
	default:
		return "Unknown"
	}
}

// CodecError is the error type returned out of every rle package
// entrypoint (Deflate, Inflate, and their helpers). Callers should treat
// the output path as undefined on any CodecError and remove it.
type CodecError struct {
	Kind Kind
	Msg  string
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("rle: %s: %s", e.Kind, e.Msg)
}

func newErr(kind Kind, format string, args ...any) *CodecError {
	return &CodecError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
