// Package errs provides standardized error types for the order lifecycle engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for every failure class the engine reports:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: bad caller input
//   - ObjectNotFoundError: a referenced entity is absent
//   - InvalidStateError: a transition or mutation is not allowed from the current state
//   - PersistenceError: storage is unavailable or the unit of work failed
//   - DeliveryError: the message transport did not acknowledge a published event
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The three input errors also match ErrValidation, so callers can classify any
// rejected input with a single errors.Is check:
//
//	if errors.Is(err, errs.ErrValidation) {
//	    return http.StatusBadRequest
//	}
package errs
