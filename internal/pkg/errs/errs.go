package errs

import (
	"errors"
	"fmt"
	"strings"
)

// classified is a sentinel that also matches the error class it belongs to.
type classified struct {
	msg   string
	class error
}

func (e *classified) Error() string {
	return e.msg
}

func (e *classified) Is(target error) bool {
	return target == e.class
}

var (
	// ErrValidation is the class shared by all rejected-input errors.
	ErrValidation = errors.New("validation failed")

	ErrValueIsRequired   error = &classified{msg: "value is required", class: ErrValidation}
	ErrValueIsInvalid    error = &classified{msg: "value is invalid", class: ErrValidation}
	ErrValueIsOutOfRange error = &classified{msg: "value is out of range", class: ErrValidation}

	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidState   = errors.New("invalid state")
	ErrPersistence    = errors.New("persistence failure")
	ErrDelivery       = errors.New("delivery failure")
)

// ObjectNotFoundError reports a missing entity.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	msg := fmt.Sprintf("%s: %s %v", ErrObjectNotFound, e.ParamName, sanitize(e.ID))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that fails a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %v, min value is %v, max value is %v",
		ErrValueIsOutOfRange, e.ParamName, sanitize(e.Value), sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing or blank value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidStateError reports an action attempted from a state that does not allow it.
// Allowed lists the states the action is accepted from.
type InvalidStateError struct {
	Action  string
	State   string
	Allowed []string
}

func NewInvalidStateError(action, state string, allowed ...string) *InvalidStateError {
	return &InvalidStateError{Action: action, State: state, Allowed: allowed}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s in the '%s' state, allowed states: %s",
		ErrInvalidState, e.Action, e.State, strings.Join(e.Allowed, ", "))
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// PersistenceError wraps a storage failure. It matches both ErrPersistence and its cause.
type PersistenceError struct {
	Operation string
	Cause     error
}

func NewPersistenceError(operation string, cause error) *PersistenceError {
	return &PersistenceError{Operation: operation, Cause: cause}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s (cause: %v)", ErrPersistence, e.Operation, e.Cause)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Cause}
}

// DeliveryError wraps a transport failure to acknowledge a published message.
// It matches both ErrDelivery and its cause.
type DeliveryError struct {
	Topic string
	Cause error
}

func NewDeliveryError(topic string, cause error) *DeliveryError {
	return &DeliveryError{Topic: topic, Cause: cause}
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s: topic %s (cause: %v)", ErrDelivery, e.Topic, e.Cause)
}

func (e *DeliveryError) Unwrap() []error {
	return []error{ErrDelivery, e.Cause}
}

// WrapPersistence returns nil for a nil err and leaves already classified errors untouched.
func WrapPersistence(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPersistence) || errors.Is(err, ErrObjectNotFound) ||
		errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidState) {
		return err
	}
	return NewPersistenceError(operation, err)
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}
