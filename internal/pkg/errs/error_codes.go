/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally within the
server and in the HTTP responses returned to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body is not valid JSON.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Room Errors
const (
	// ErrRoomNotFound indicates that the room is not part of the configured room list.
	ErrRoomNotFound = 2103
)

// 3xxx: Account and Session Errors
const (
	// ErrMissingSignupFields indicates that one of username, firstname, lastname or password is empty.
	ErrMissingSignupFields = 3101

	// ErrMissingCredentials indicates that username or password is empty on login.
	ErrMissingCredentials = 3102

	// ErrUserAlreadyExists indicates that the requested username is taken.
	ErrUserAlreadyExists = 3103

	// ErrInvalidCredentials indicates an unknown username or a password mismatch.
	ErrInvalidCredentials = 3104

	// ErrAlreadyLoggedIn indicates that the request already carries a valid identity token.
	ErrAlreadyLoggedIn = 3105
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
