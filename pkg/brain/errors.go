package brain

// ErrorKind classifies a failed guard or mutation.
type ErrorKind int

const (
	KindWrongMode ErrorKind = iota + 1
	KindHeightOutOfBounds
	KindInvalidValue
	KindUnknownField
)

func (k ErrorKind) String() string {
	switch k {
	case KindWrongMode:
		return "wrong_mode"
	case KindHeightOutOfBounds:
		return "height_out_of_bounds"
	case KindInvalidValue:
		return "invalid_value"
	case KindUnknownField:
		return "unknown_field"
	}
	return "unknown"
}

// Error is returned by guards and setters. The message is meant for the user; how it is
// shown is up to the caller.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrWrongMode) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrWrongMode         = &Error{Kind: KindWrongMode, Message: "wrong mode"}
	ErrHeightOutOfBounds = &Error{Kind: KindHeightOutOfBounds, Message: "height out of bounds"}
	ErrInvalidValue      = &Error{Kind: KindInvalidValue, Message: "invalid value"}
	ErrUnknownField      = &Error{Kind: KindUnknownField, Message: "unknown field"}
)

func wrongMode(msg string) error    { return &Error{Kind: KindWrongMode, Message: msg} }
func invalidValue(msg string) error { return &Error{Kind: KindInvalidValue, Message: msg} }
