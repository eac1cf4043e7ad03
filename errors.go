package adminauth

import "errors"

// Kind classifies service failures so transports can map them to a status
// without inspecting message text.
type Kind uint8

const (
	// KindUnknown marks errors that did not originate in this package.
	KindUnknown Kind = iota
	// KindNotFound marks lookups that matched no user.
	KindNotFound
	// KindUnauthorized marks failed credential or token checks.
	KindUnauthorized
	// KindUnavailable marks infrastructure failures (credential store, registry).
	KindUnavailable
)

// Error is a classified service error. The message key identifies the
// user-facing text; resolving it to a localized string is the i18n layer's
// job, never the core's.
type Error struct {
	kind Kind
	key  string
	text string
}

func (e *Error) Error() string { return e.text }

// Kind returns the error classification.
func (e *Error) Kind() Kind { return e.kind }

// MessageKey returns the localization key for the user-facing message.
func (e *Error) MessageKey() string { return e.key }

var (
	// ErrUserNotFound is returned when no user matches the given email or ID.
	ErrUserNotFound = &Error{kind: KindNotFound, key: "errors.USER.NOT_FOUND", text: "user not found"}
	// ErrInvalidPassword is returned when the password does not match the stored hash.
	ErrInvalidPassword = &Error{kind: KindUnauthorized, key: "errors.AUTH.INVALID_PASSWORD", text: "invalid password"}
	// ErrInvalidCredentials is returned for structurally invalid sign-in input.
	ErrInvalidCredentials = &Error{kind: KindUnauthorized, key: "errors.AUTH.INVALID_CREDENTIALS", text: "invalid credentials"}
	// ErrTokenInvalid is returned by the gate for unverifiable access tokens.
	ErrTokenInvalid = &Error{kind: KindUnauthorized, key: "errors.AUTH.TOKEN_INVALID", text: "invalid token"}
	// ErrRefreshInvalid is returned by the gate when a refresh token fails
	// verification or its session identifier no longer matches the registry.
	ErrRefreshInvalid = &Error{kind: KindUnauthorized, key: "errors.AUTH.REFRESH_INVALID", text: "invalid refresh token"}
	// ErrStoreUnavailable wraps credential store infrastructure failures.
	ErrStoreUnavailable = &Error{kind: KindUnavailable, key: "errors.INFRA.CREDENTIAL_STORE", text: "credential store unavailable"}
	// ErrRegistryUnavailable wraps session registry infrastructure failures.
	ErrRegistryUnavailable = &Error{kind: KindUnavailable, key: "errors.INFRA.SESSION_REGISTRY", text: "session registry unavailable"}
	// ErrServiceNotReady is returned when a Service is used before Build.
	ErrServiceNotReady = &Error{kind: KindUnavailable, key: "errors.INFRA.NOT_READY", text: "service not initialized"}
)

// MessageSignedOut is the localization key for the sign-out confirmation.
const MessageSignedOut = "success.AUTH.LOGOUT"

// KindOf reports the classification of err, unwrapping as needed.
// Errors that did not pass through this package report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

// MessageKeyOf returns the localization key for err, or a generic internal
// key when err carries none.
func MessageKeyOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.key
	}
	return "errors.INTERNAL"
}
