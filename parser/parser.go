// Package parser pulls plain text out of uploaded documents so it can be
// handed to the knowledge extractor.
package parser

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for file extensions with no parser.
	ErrUnsupportedFormat = errors.New("parser: unsupported document format")

	// ErrNoText is returned when a document parses but yields no text.
	ErrNoText = errors.New("parser: no text found in document")
)

// ParseResult contains the text extracted from a document.
type ParseResult struct {
	Sections []Section // in document order
	Method   string    // "native" or "vision"
}

// Section is a contiguous piece of a document.
type Section struct {
	Heading    string
	Content    string
	PageNumber int
}

// Text joins headings and contents, one blank line between sections.
func (r *ParseResult) Text() string {
	var b strings.Builder
	for _, s := range r.Sections {
		for _, part := range []string{s.Heading, s.Content} {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(part)
		}
	}
	return b.String()
}

// Parser can parse a specific document format.
type Parser interface {
	Parse(ctx context.Context, path string) (*ParseResult, error)
	SupportedFormats() []string
}
