package lightningroute

import (
	"errors"

	"github.com/brunobiangulo/lightningroute/knowledge"
	"github.com/brunobiangulo/lightningroute/parser"
)

var (
	// ErrInvalidInput is returned when the text is empty or whitespace only.
	ErrInvalidInput = knowledge.ErrInvalidInput

	// ErrUpstreamAuth is returned when no language model credential is configured.
	ErrUpstreamAuth = knowledge.ErrUpstreamAuth

	// ErrUpstreamRequest is returned when the language model call fails.
	ErrUpstreamRequest = knowledge.ErrUpstreamRequest

	// ErrMalformedResponse is returned when the model output fails validation.
	ErrMalformedResponse = knowledge.ErrMalformedResponse

	// ErrUnsupportedFormat is returned for unrecognized upload formats.
	ErrUnsupportedFormat = parser.ErrUnsupportedFormat

	// ErrNoText is returned when an uploaded document contains no text.
	ErrNoText = parser.ErrNoText

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("lightningroute: invalid configuration")
)
