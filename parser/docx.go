package parser

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

type DOCXParser struct{}

func (p *DOCXParser) SupportedFormats() []string { return []string{"docx"} }

// Parse reads word/document.xml and splits the body at heading-styled
// paragraphs. Table cells are read in place as ordinary paragraphs.
func (p *DOCXParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening DOCX: %w", err)
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("word/document.xml not found in DOCX")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("opening document.xml: %w", err)
	}
	defer rc.Close()

	sections, err := parseDocxBody(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing DOCX XML: %w", err)
	}
	return &ParseResult{Sections: sections, Method: "native"}, nil
}

// docxParagraph is the text and style of one w:p element.
type docxParagraph struct {
	text    string
	heading bool
}

func parseDocxBody(r io.Reader) ([]Section, error) {
	paras, err := readDocxParagraphs(r)
	if err != nil {
		return nil, err
	}

	var sections []Section
	var current Section
	var content strings.Builder
	flush := func() {
		current.Content = strings.TrimSpace(content.String())
		if current.Heading != "" || current.Content != "" {
			sections = append(sections, current)
		}
		current = Section{}
		content.Reset()
	}

	for _, para := range paras {
		if para.text == "" {
			continue
		}
		if para.heading {
			flush()
			current.Heading = para.text
			continue
		}
		if content.Len() > 0 {
			content.WriteString("\n")
		}
		content.WriteString(para.text)
	}
	flush()

	return sections, nil
}

func readDocxParagraphs(r io.Reader) ([]docxParagraph, error) {
	decoder := xml.NewDecoder(r)

	var (
		paras   []docxParagraph
		current strings.Builder
		depth   int // nesting of w:p, >0 while inside a paragraph
		inText  bool
		heading bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS && t.Name.Space != "" {
				continue
			}
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					current.Reset()
					heading = false
				}
				depth++
			case "pStyle":
				for _, attr := range t.Attr {
					if attr.Name.Local != "val" {
						continue
					}
					lower := strings.ToLower(attr.Value)
					if strings.HasPrefix(lower, "heading") || strings.HasPrefix(lower, "title") {
						heading = true
					}
				}
			case "t":
				inText = true
			case "tab":
				if depth > 0 {
					current.WriteString("\t")
				}
			case "br":
				if depth > 0 {
					current.WriteString("\n")
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNS && t.Name.Space != "" {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				depth--
				if depth == 0 {
					paras = append(paras, docxParagraph{
						text:    strings.TrimSpace(current.String()),
						heading: heading,
					})
				}
			}
		case xml.CharData:
			if inText && depth > 0 {
				current.Write(t)
			}
		}
	}

	return paras, nil
}
