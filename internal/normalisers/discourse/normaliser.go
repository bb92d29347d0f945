// Package discourse provides the Normaliser for Discourse forum posts.
package discourse

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// MinContentLength is the shortest cleaned post, in characters, worth keeping.
const MinContentLength = 25

// Normaliser cleans forum posts and rejects those too short to be useful.
type Normaliser struct {
	cleaner driven.TextCleaner
}

// New creates a new forum normaliser using cleaner.
func New(cleaner driven.TextCleaner) *Normaliser {
	return &Normaliser{cleaner: cleaner}
}

// Source returns the document source this normaliser handles.
func (n *Normaliser) Source() string {
	return domain.SourceForum
}

// Normalise cleans a forum post. Posts shorter than MinContentLength after
// cleaning return domain.ErrContentTooShort.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := n.cleaner.Clean(string(raw.Content), true)
	if utf8.RuneCountInString(content) < MinContentLength {
		return nil, fmt.Errorf("%w: %s", domain.ErrContentTooShort, raw.URI)
	}

	metadata := domain.CopyMetadata(raw.Metadata)
	metadata[domain.MetaSource] = domain.SourceForum
	title, _ := metadata["topic_title"].(string)

	doc := domain.Document{
		ID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte(raw.URI)).String(),
		Source:   domain.SourceForum,
		URI:      raw.URI,
		Title:    title,
		Content:  content,
		Metadata: metadata,
	}

	return &driven.NormaliseResult{
		Document: doc,
	}, nil
}
