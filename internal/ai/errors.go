package ai

import "errors"

var (
	// ErrMissingAPIKey is returned before any network call is attempted.
	ErrMissingAPIKey = errors.New("api key is missing")

	// ErrEmptyCompletion means the provider answered 2xx but the response
	// held no extractable text.
	ErrEmptyCompletion = errors.New("completion contained no text")
)
