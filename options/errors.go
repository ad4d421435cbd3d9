package options

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by Container operations. Use errors.Is
// to test for them.
var (
	// ErrInvalidArgument reports an input the container cannot accept: a
	// bulk-load source that is neither a map nor a sequence of pairs, a value
	// that cannot be converted to a setter's parameter type, or an attempt to
	// unset an option that does not accept nil.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoSuchSetter reports that strict mode is on and the key has no
	// matching setter method.
	ErrNoSuchSetter = errors.New("no such setter")

	// ErrNoSuchGetter reports that the key has no matching getter method.
	ErrNoSuchGetter = errors.New("no such getter")
)

// AccessorError describes a failed accessor dispatch for a single key.
type AccessorError struct {
	// Key is the option key as given by the caller.
	Key string

	// Accessor is the computed method name, e.g. "SetListenAddr".
	Accessor string

	// Err is one of the package sentinels.
	Err error

	// Cause is the failure that was re-signalled as Err, if any. It is kept
	// for diagnostics only and is not returned by Unwrap.
	Cause error

	msg string
}

// Error returns the human-readable message.
func (e *AccessorError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return fmt.Sprintf("option %q (%s): %v", e.Key, e.Accessor, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *AccessorError) Unwrap() error {
	return e.Err
}

func noSuchSetter(key, setter string) *AccessorError {
	return &AccessorError{
		Key:      key,
		Accessor: setter,
		Err:      ErrNoSuchSetter,
		msg: fmt.Sprintf("the option %q does not have a matching %s setter method which must be defined",
			key, setter),
	}
}

func noSuchGetter(key, getter string) *AccessorError {
	return &AccessorError{
		Key:      key,
		Accessor: getter,
		Err:      ErrNoSuchGetter,
		msg: fmt.Sprintf("the option %q does not have a matching %s getter method which must be defined",
			key, getter),
	}
}

func invalidValue(key, setter string, format string, args ...any) *AccessorError {
	return &AccessorError{
		Key:      key,
		Accessor: setter,
		Err:      ErrInvalidArgument,
		msg:      fmt.Sprintf("option %q: ", key) + fmt.Sprintf(format, args...),
	}
}

func notUnsettable(key, setter string, cause error) *AccessorError {
	return &AccessorError{
		Key:      key,
		Accessor: setter,
		Err:      ErrInvalidArgument,
		Cause:    cause,
		msg:      fmt.Sprintf("the option %q cannot be unset as nil is an invalid value for it", key),
	}
}
