// Package errs provides the error types shared by the shipment core.
//
// Every error type follows the same shape:
//   - a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ...) usable with errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - constructors with and without cause
//   - Unwrap returning the sentinel
//
// Domain packages define their own state errors (a load that is not pending, a
// voided document, a cross-tenant reference) and use these types only for
// missing entities and malformed values.
package errs
