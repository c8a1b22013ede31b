// Package validate holds the input validation errors reported to callers
// of the request builders.
package validate

import (
	"fmt"
	"strings"
)

// MissingRequiredInputError is returned when none of the parameters that
// can satisfy a requirement was supplied.
type MissingRequiredInputError struct {
	Parameter    string
	Alternatives []string
}

func (e *MissingRequiredInputError) Error() string {
	if len(e.Alternatives) > 0 {
		return fmt.Sprintf("either --%s or %s must be specified", e.Parameter, flagList(e.Alternatives))
	}
	return fmt.Sprintf("--%s must be specified", e.Parameter)
}

// NewMissingRequiredInputError builds a MissingRequiredInputError.
func NewMissingRequiredInputError(parameter string, alternatives ...string) *MissingRequiredInputError {
	return &MissingRequiredInputError{Parameter: parameter, Alternatives: alternatives}
}

// ConflictingInputError is returned when two mutually exclusive parameters
// were both supplied.
type ConflictingInputError struct {
	Parameter     string
	ConflictsWith string
}

func (e *ConflictingInputError) Error() string {
	return fmt.Sprintf("--%s and --%s cannot be used together", e.Parameter, e.ConflictsWith)
}

func NewConflictingInputError(parameter, conflictsWith string) *ConflictingInputError {
	return &ConflictingInputError{Parameter: parameter, ConflictsWith: conflictsWith}
}

// UnsupportedCombinationError is returned when a parameter is not
// accepted in the mode selected by another parameter.
type UnsupportedCombinationError struct {
	Parameter string
	With      string
	Reason    string
}

func (e *UnsupportedCombinationError) Error() string {
	msg := fmt.Sprintf("--%s cannot be specified together with --%s", e.Parameter, e.With)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func NewUnsupportedCombinationError(parameter, with, reason string) *UnsupportedCombinationError {
	return &UnsupportedCombinationError{Parameter: parameter, With: with, Reason: reason}
}

// MalformedProtocolError is returned when a protocol entry does not have
// the shape protocol[:port].
type MalformedProtocolError struct {
	Parameter string
	Value     string
}

func (e *MalformedProtocolError) Error() string {
	return fmt.Sprintf("invalid --%s %q: expected format protocol[:port]", e.Parameter, e.Value)
}

// UnsupportedProtocolError is returned when a protocol name is not in the
// supported set.
type UnsupportedProtocolError struct {
	Parameter string
	Value     string
	Supported []string
}

func (e *UnsupportedProtocolError) Error() string {
	return fmt.Sprintf("unsupported protocol %q in --%s; supported protocols are: %s",
		e.Value, e.Parameter, strings.Join(e.Supported, ", "))
}

// InvalidPortError is returned when a port suffix is not a valid port
// number.
type InvalidPortError struct {
	Parameter string
	Value     string
	Port      string
	Err       error
}

func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("invalid port %q in --%s %q: must be an integer between 0 and 65535",
		e.Port, e.Parameter, e.Value)
}

func (e *InvalidPortError) Unwrap() error {
	return e.Err
}

// InvalidValueError is returned when a parameter value is outside its
// allowed set or cannot be parsed.
type InvalidValueError struct {
	Parameter string
	Value     string
	Allowed   []string
	Err       error
}

func (e *InvalidValueError) Error() string {
	msg := fmt.Sprintf("invalid value %q for --%s", e.Value, e.Parameter)
	if len(e.Allowed) > 0 {
		msg += "; allowed values are: " + strings.Join(e.Allowed, ", ")
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// OneOf returns an InvalidValueError unless value matches one of allowed,
// ignoring case. On success it returns the canonical spelling from allowed.
func OneOf(parameter, value string, allowed []string) (string, error) {
	for _, a := range allowed {
		if strings.EqualFold(a, value) {
			return a, nil
		}
	}
	return "", &InvalidValueError{Parameter: parameter, Value: value, Allowed: allowed}
}

func flagList(names []string) string {
	flags := make([]string, len(names))
	for i, n := range names {
		flags[i] = "--" + n
	}
	return strings.Join(flags, " or ")
}
