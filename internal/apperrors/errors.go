package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidCredentials indicates an email/password pair that did not match a
// stored user. It is always surfaced with the same generic message, whether the
// email is unknown or the password is wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrMissingCode indicates an OAuth callback that carried neither an
// authorization code nor a provider error parameter.
var ErrMissingCode = errors.New("missing authorization code")

// ErrProviderDenied indicates that the provider reported an explicit error on
// the callback (the user cancelled or denied consent). Handled as a redirect
// back to the login page, not as a server error.
var ErrProviderDenied = errors.New("provider reported an authorization error")

// ErrExchange indicates a failed authorization-code-to-token exchange, whether
// the provider responded with a non-success status or with an inline error
// field in an otherwise successful payload.
var ErrExchange = errors.New("token exchange failed")

// ErrProfileIncomplete indicates that no usable email address could be
// obtained for the external identity.
var ErrProfileIncomplete = errors.New("external profile has no usable email")

// ErrResolution indicates that the user row was still absent after the
// insert-or-ignore and read-back sequence. Should not occur when the store
// honors its conflict-on-insert guarantee.
var ErrResolution = errors.New("user resolution failed")
