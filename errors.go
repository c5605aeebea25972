package subscribers

import "github.com/goliatone/go-errors"

const (
	TextCodeInvalidCredentials    = "invalid_credentials"
	TextCodeInsufficientAuthority = "insufficient_authority"
	TextCodeAuthorityExceeded     = "authority_exceeded"
	TextCodeProtectedUser         = "protected_user"
	TextCodeEmailTaken            = "email_taken"
	TextCodeUsernameTaken         = "username_taken"
	TextCodeSubscriberNotFound    = "subscriber_not_found"
	TextCodeUserNotFound          = "user_not_found"
	TextCodePasswordMismatch      = "password_mismatch"
	TextCodeNothingToUpdate       = "nothing_to_update"
)

// ErrInvalidCredentials is returned when Basic credentials fail to resolve
// an account or the password does not match. Missing accounts and bad
// passwords are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid username or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrInsufficientAuthority is returned when an authenticated account does
// not clear an action's authority bar. It maps to 401, not 403, matching
// the service's single unauthorized status for both failure kinds.
var ErrInsufficientAuthority = errors.New("insufficient authority for action", errors.CategoryAuth).
	WithTextCode(TextCodeInsufficientAuthority).
	WithCode(errors.CodeUnauthorized)

// ErrAuthorityExceeded is returned when a requester tries to mint or raise
// an account to an authority above their own.
var ErrAuthorityExceeded = errors.New("cannot assign authority above your own", errors.CategoryAuth).
	WithTextCode(TextCodeAuthorityExceeded).
	WithCode(errors.CodeUnauthorized)

// ErrProtectedUser is returned when the target account outranks the
// requester.
var ErrProtectedUser = errors.New("target user outranks requester", errors.CategoryAuth).
	WithTextCode(TextCodeProtectedUser).
	WithCode(errors.CodeUnauthorized)

// ErrEmailTaken is returned when a subscriber email already exists. The
// service maps conflicts to 400 rather than 409.
var ErrEmailTaken = errors.New("email already subscribed", errors.CategoryConflict).
	WithTextCode(TextCodeEmailTaken).
	WithCode(errors.CodeBadRequest)

// ErrUsernameTaken is returned when a username already belongs to another
// account.
var ErrUsernameTaken = errors.New("username already taken", errors.CategoryConflict).
	WithTextCode(TextCodeUsernameTaken).
	WithCode(errors.CodeBadRequest)

// ErrSubscriberNotFound is returned when an id does not resolve to a
// subscriber.
var ErrSubscriberNotFound = errors.New("subscriber not found", errors.CategoryNotFound).
	WithTextCode(TextCodeSubscriberNotFound).
	WithCode(errors.CodeNotFound)

// ErrUserNotFound is returned when an id does not resolve to a user.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrPasswordMismatch is returned when password and confirmation differ.
var ErrPasswordMismatch = errors.New("password and confirmation do not match", errors.CategoryValidation).
	WithTextCode(TextCodePasswordMismatch).
	WithCode(errors.CodeBadRequest)

// ErrNothingToUpdate is returned when an update patch changes no field.
// An empty patch is reported as a failed update, never a silent success.
var ErrNothingToUpdate = errors.New("update changes nothing", errors.CategoryValidation).
	WithTextCode(TextCodeNothingToUpdate).
	WithCode(errors.CodeBadRequest)

// IsNotFound reports whether err carries the not-found category.
func IsNotFound(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryNotFound
}

// IsAuthError reports whether err is an authentication or authorization
// failure. Both map to 401 on the wire.
func IsAuthError(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryAuth || richErr.Category == errors.CategoryAuthz
}

func validationError(msg string, textCode string) *errors.Error {
	return errors.New(msg, errors.CategoryValidation).
		WithTextCode(textCode).
		WithCode(errors.CodeBadRequest)
}
