package request

import "errors"

var (
	// ErrInvalidConfig is returned when required environment variables are
	// missing or malformed.
	ErrInvalidConfig = errors.New("invalid request configuration")

	// ErrMissingAppID is returned when a builder is constructed without an
	// application ID.
	ErrMissingAppID = errors.New("app ID is required")

	// ErrMissingTarget is returned when a request body is assembled without
	// any audience targeting.
	ErrMissingTarget = errors.New("request has no targeting")

	// ErrMissingDefaultContent is returned when the body has no content for
	// the default language; the delivery service rejects such requests.
	ErrMissingDefaultContent = errors.New("content for the default language is required")

	// ErrInvalidLanguageCode is returned when localized content is keyed by
	// a code that is neither in the service table nor a well-formed tag.
	ErrInvalidLanguageCode = errors.New("invalid language code")
)
