// Package errs provides standardized error types for the ordering application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types, one per failure category:
//   - ObjectNotFoundError: the referenced order does not exist
//   - InvalidStateError: an operation is forbidden in the aggregate's current status
//   - ValueIsInvalidError, ValueIsRequiredError, ValueIsOutOfRangeError: bad arguments
//   - CurrencyMismatchError: arithmetic between different currencies
//   - BusinessRuleViolationError: a domain-service rule check failed
//   - VersionIsInvalidError: a stale optimistic-concurrency token
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so callers branch with errors.Is
package errs
