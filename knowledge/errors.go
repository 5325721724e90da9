package knowledge

import "errors"

var (
	// ErrInvalidInput is returned when the text to decompose is empty or
	// whitespace only.
	ErrInvalidInput = errors.New("knowledge: no text provided")

	// ErrUpstreamAuth is returned when the language model service has no
	// credential configured. No request is sent.
	ErrUpstreamAuth = errors.New("knowledge: language model credential not configured")

	// ErrUpstreamRequest is returned when the call to the language model
	// fails on the network or with a non-success status.
	ErrUpstreamRequest = errors.New("knowledge: language model request failed")

	// ErrMalformedResponse is returned when the model output is not a JSON
	// array of {id, title, children} objects.
	ErrMalformedResponse = errors.New("knowledge: malformed language model response")
)
