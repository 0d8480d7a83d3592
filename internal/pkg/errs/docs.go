// Package errs provides the error taxonomy shared by the whole service.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying the details
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() so errors.Is matches the sentinel
//
// The sentinels map onto the kinds the API reports:
//   - ErrObjectNotFound: NotFound
//   - ErrForbidden: Forbidden
//   - ErrConflict, ErrVersionIsInvalid: Conflict
//   - ErrValueIsInvalid, ErrValueIsRequired, ErrValueIsOutOfRange: ValidationFailure
//   - ErrUnavailable: Unavailable (retryable)
package errs
