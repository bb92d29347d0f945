package enricher

import (
	"context"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.PostProcessor = (*Processor)(nil)

// Processor derives domain, quality_score and content_type for each chunk.
// Course chunks are authoritative; forum chunks are scored from their
// acceptance, likes and replies.
type Processor struct{}

// New creates a new enricher processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "enricher"
}

// Process returns enriched copies of chunks. Chunk count and order are kept.
func (p *Processor) Process(_ context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	if len(chunks) == 0 {
		return chunks, nil
	}

	out := make([]domain.Chunk, len(chunks))
	for i, c := range chunks {
		c.Metadata = Enrich(c.Content, c.Metadata)
		out[i] = c
	}
	return out, nil
}

// Enrich returns a copy of metadata with the derived fields added.
func Enrich(content string, metadata map[string]any) map[string]any {
	md := domain.CopyMetadata(metadata)

	// Only chunks that carry a url get a domain.
	if raw, ok := md[domain.MetaURL]; ok {
		u, _ := raw.(string)
		md[domain.MetaDomain] = Host(u)
	}

	if md[domain.MetaSource] == domain.SourceCourse {
		md[domain.MetaQualityScore] = courseScore
		md[domain.MetaContentType] = domain.ContentTypeCourse
		return md
	}

	accepted, _ := md[domain.MetaIsAcceptedAnswer].(bool)
	likes, _ := domain.ToFloat(md[domain.MetaLikeCount])
	replies, _ := domain.ToFloat(md[domain.MetaReplyCount])
	postType, _ := md[domain.MetaPostType].(string)

	md[domain.MetaQualityScore] = ForumScore(accepted, likes, replies)
	md[domain.MetaContentType] = ForumContentType(content, postType)
	return md
}
