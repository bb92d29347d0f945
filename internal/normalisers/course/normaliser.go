// Package course provides the Normaliser for scraped course markdown pages.
// It separates front matter from the body and merges it with the page's
// record from the metadata file.
package course

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/google/uuid"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
	"github.com/custodia-labs/tdsprep/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

const fence = "---"

// Normaliser handles course markdown documents.
type Normaliser struct{}

// New creates a new course normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Source returns the document source this normaliser handles.
func (n *Normaliser) Source() string {
	return domain.SourceCourse
}

// Normalise converts a course markdown file to a normalised document.
// The Content field holds the markdown body without front matter; headings
// are kept for the chunker.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	front, body := SplitFrontMatter(raw.Content)

	metadata := domain.CopyMetadata(raw.Metadata)
	for k, v := range front {
		metadata[k] = v
	}
	metadata[domain.MetaSource] = domain.SourceCourse
	metadata[domain.MetaContentType] = domain.ContentTypeCourse

	doc := domain.Document{
		ID:       DocumentID(raw.URI),
		Source:   domain.SourceCourse,
		URI:      raw.URI,
		Title:    extractTitle(metadata, body, raw.URI),
		Content:  body,
		Metadata: metadata,
	}

	return &driven.NormaliseResult{
		Document: doc,
	}, nil
}

// DocumentID derives a stable document identifier from its location.
func DocumentID(uri string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(uri)).String()
}

// SplitFrontMatter separates leading front matter from the markdown body.
// Front matter values are returned as strings. When the block is not valid
// YAML, simple "key: value" lines are read instead.
func SplitFrontMatter(content []byte) (map[string]string, string) {
	if !bytes.HasPrefix(content, []byte(fence)) {
		return nil, string(content)
	}

	var parsed map[string]any
	rest, err := frontmatter.Parse(bytes.NewReader(content), &parsed)
	if err == nil {
		front := make(map[string]string, len(parsed))
		for k, v := range parsed {
			front[k] = stringify(v)
		}
		return front, string(rest)
	}

	logger.Debug("Front matter is not valid YAML, reading it line by line: %v", err)
	return splitLenient(string(content))
}

// splitLenient reads the block between the first two fences as
// "key: value" lines, stripping surrounding quotes from values.
func splitLenient(content string) (map[string]string, string) {
	parts := strings.SplitN(content, fence, 3)
	if len(parts) < 3 {
		return nil, content
	}

	front := make(map[string]string)
	for _, line := range strings.Split(parts[1], "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		front[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"`)
	}
	return front, parts[2]
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// extractTitle prefers a title from metadata, then the first level-one
// heading, then the file name.
func extractTitle(metadata map[string]any, body, uri string) string {
	if title, ok := metadata[domain.MetaTitle].(string); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}

	// Fall back to filename
	filename := filepath.Base(uri)
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
