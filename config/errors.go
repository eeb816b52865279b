package config

import "fmt"

// Kind classifies option errors so callers can branch on intent rather than
// text.
type Kind int

const (
	KindUnknownOption Kind = iota // option or section name not recognised
	KindEmptyValue                // required value given as ""
	KindInvalidValue              // value does not parse or is out of range
)

func (k Kind) String() string {
	switch k {
	case KindUnknownOption:
		return "unknown option"
	case KindEmptyValue:
		return "empty value"
	case KindInvalidValue:
		return "invalid value"
	default:
		return "unknown"
	}
}

// Error is a rejected option.
type Error struct {
	Kind   Kind
	Module string // e.g. "network_mapping"
	Option string // e.g. "cache_size"; empty for a whole section
	Value  string
	Err    error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	name := e.Module
	if e.Option != "" {
		name += "." + e.Option
	}
	msg := fmt.Sprintf("config: %s: %s", name, e.Kind)
	if e.Kind == KindInvalidValue {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same Kind, so errors.Is(err,
// &Error{Kind: KindEmptyValue}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
