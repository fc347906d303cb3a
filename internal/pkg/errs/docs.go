// Package errs provides the error taxonomy shared by every layer of the service.
//
// Each error type follows the same pattern: a sentinel error variable, a struct with
// the error details, constructors with and without cause, Error() for formatting and
// Unwrap() for classification with errors.Is.
//
// Classification used by the transport layer:
//   - ErrValidation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - ErrObjectNotFound: ObjectNotFoundError (unknown table token, order, menu item)
//   - ErrInvalidTransition: InvalidTransitionError (state machine or lost race)
//   - ErrCollaboratorUnavailable: CollaboratorUnavailableError (database, broker)
package errs
