// Package guard detects values that were declared instead of constructed.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in commands and queries so that a zero value,
// which skipped the constructor's validation, is rejected by the handler.
//
// Example:
//
//	type VoidBOLCommand struct {
//	    bolID kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func (c VoidBOLCommand) Validate() error {
//	    return c.guard.Validate(ErrVoidBOLCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the owning value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
