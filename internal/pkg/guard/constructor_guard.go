// Package guard marks values that were produced by their constructor, so a zero value
// of a command or entity can be told apart from a validated one.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero guard when no
// specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in commands and queries. Only NewConstructorGuard
// yields a guard that validates, so a struct literal built outside the package
// constructor fails Validate.
//
//	type AddItemCommand struct {
//	    guard.ConstructorGuard
//	    orderID int64
//	}
//
//	func (c AddItemCommand) Validate() error {
//	    return c.ConstructorGuard.Validate(ErrAddItemCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError, or ErrDefaultConstructorGuard when it is nil,
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
