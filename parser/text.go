package parser

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"
)

// TextParser handles plain text and markdown files.
type TextParser struct{}

func (p *TextParser) SupportedFormats() []string { return []string{"txt", "md", "markdown"} }

func (p *TextParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading text file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("reading text file: %s is not valid UTF-8", path)
	}

	res := &ParseResult{Method: "native"}
	if len(data) > 0 {
		res.Sections = []Section{{Content: string(data)}}
	}
	return res, nil
}
