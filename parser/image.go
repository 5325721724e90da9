package parser

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brunobiangulo/lightningroute/llm"
)

const transcribePrompt = `Transcribe all text visible in this image. Preserve the reading order:
- keep headings on their own lines
- keep list items as list items
- do not add commentary`

// ImageParser transcribes images (photos of notes, slides, screenshots)
// through a vision-capable model.
type ImageParser struct {
	vision llm.VisionProvider
	model  string
}

func NewImageParser(provider llm.VisionProvider, model string) *ImageParser {
	return &ImageParser{vision: provider, model: model}
}

func (p *ImageParser) SupportedFormats() []string { return []string{"png", "jpg", "jpeg"} }

func (p *ImageParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	mime := "image/png"
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".jpg" || ext == ".jpeg" {
		mime = "image/jpeg"
	}

	resp, err := p.vision.ChatWithImages(ctx, llm.VisionChatRequest{
		Model: p.model,
		Messages: []llm.VisionMessage{{
			Role: "user",
			Content: []llm.ContentPart{
				{Type: "text", Text: transcribePrompt},
				{Type: "image_url", ImageURL: &llm.ImageURL{
					URL: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
				}},
			},
		}},
		MaxTokens: 4096,
	})
	if err != nil {
		return nil, fmt.Errorf("vision transcription failed: %w", err)
	}

	res := &ParseResult{Method: "vision"}
	if text := strings.TrimSpace(resp.Content); text != "" {
		res.Sections = []Section{{Content: text, PageNumber: 1}}
	}
	return res, nil
}
