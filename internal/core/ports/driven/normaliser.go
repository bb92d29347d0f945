package driven

import (
	"context"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
)

// Normaliser transforms raw documents into normalised form.
// Each normaliser handles one document source.
type Normaliser interface {
	// Source returns the document source this normaliser handles.
	Source() string

	// Normalise transforms a raw document into a document.
	// Returns domain.ErrContentTooShort for documents that should be skipped.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Note: Normalisation only produces a Document with Content.
// Chunking is handled by the PostProcessor pipeline.
type NormaliseResult struct {
	// Document is the normalised document with Content field populated.
	Document domain.Document
}

// TextCleaner strips markup and noise from text.
// Implementations must be safe to share across calls.
type TextCleaner interface {
	// Clean returns the cleaned text. Forum text additionally loses
	// quoted replies and mentions, and fenced code becomes a placeholder.
	Clean(text string, forum bool) string
}
