package knowledge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
)

// fencedRe matches a response that is entirely one markdown code block.
var fencedRe = regexp.MustCompile("(?s)^\\s*```(?:json|JSON)?[ \\t]*\\r?\\n(.*?)\\r?\\n?[ \\t]*```\\s*$")

// wirePoint mirrors Point with pointers so absent fields can be told apart
// from empty ones.
type wirePoint struct {
	ID       *string           `json:"id"`
	Title    *string           `json:"title"`
	Children []json.RawMessage `json:"children"`
}

// Parse decodes a model answer into a forest. The answer must be a non-empty
// JSON array of objects carrying a non-empty string id, a non-empty string
// title and an optional array of children of the same shape. Values are kept
// exactly as decoded. Failures wrap ErrMalformedResponse.
func Parse(content string) ([]Point, error) {
	if m := fencedRe.FindStringSubmatch(content); m != nil {
		content = m[1]
	}

	data := bytes.TrimSpace([]byte(content))
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty content", ErrMalformedResponse)
	}
	if data[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedResponse)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no knowledge points", ErrMalformedResponse)
	}

	return decodeList(items, "")
}

func decodeList(items []json.RawMessage, prefix string) ([]Point, error) {
	points := make([]Point, 0, len(items))
	for i, item := range items {
		p, err := decodePoint(item, fmt.Sprintf("%s[%d]", prefix, i))
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func decodePoint(raw json.RawMessage, path string) (Point, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return Point{}, fmt.Errorf("%w: %s: expected an object", ErrMalformedResponse, path)
	}

	var w wirePoint
	if err := json.Unmarshal(raw, &w); err != nil {
		return Point{}, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, path, err)
	}
	if w.ID == nil || *w.ID == "" {
		return Point{}, fmt.Errorf("%w: %s: missing id", ErrMalformedResponse, path)
	}
	if w.Title == nil || *w.Title == "" {
		return Point{}, fmt.Errorf("%w: %s: missing title", ErrMalformedResponse, path)
	}

	children, err := decodeList(w.Children, path+".children")
	if err != nil {
		return Point{}, err
	}
	return Point{ID: *w.ID, Title: *w.Title, Children: children}, nil
}
