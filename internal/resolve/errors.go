package resolve

import "fmt"

// Reason classifies why a construct cannot cross the boundary.
type Reason string

const (
	// ReasonUnsupportedType is a type expression matching none of the
	// recognized productions.
	ReasonUnsupportedType Reason = "unsupported_type"
	// ReasonNestedOptional is an Option directly wrapping another Option.
	ReasonNestedOptional Reason = "nested_optional"
	// ReasonBadReturnShape is a function return type that is not a
	// Result wrapper.
	ReasonBadReturnShape Reason = "bad_return_shape"
	// ReasonBadStructShape is a struct whose fields are neither fully
	// named nor fully positional (unit structs).
	ReasonBadStructShape Reason = "bad_struct_shape"
)

// UnsupportedError is the single error kind of this package. It is always
// fatal to the resolution pass and carries the offending construct in its
// canonical textual form.
type UnsupportedError struct {
	Reason    Reason
	Construct string
}

func (e *UnsupportedError) Error() string {
	switch e.Reason {
	case ReasonNestedOptional:
		return fmt.Sprintf("nested optionals without indirection are not supported (Option<Option<%s>>)", e.Construct)
	case ReasonBadReturnShape:
		return fmt.Sprintf("unsupported return type %s: expected Result<T> or Result<T, E>", e.Construct)
	case ReasonBadStructShape:
		return fmt.Sprintf("unsupported struct shape for %s: fields must be named or positional", e.Construct)
	default:
		return fmt.Sprintf("unsupported type %s", e.Construct)
	}
}

func unsupported(reason Reason, construct string) *UnsupportedError {
	return &UnsupportedError{Reason: reason, Construct: construct}
}
