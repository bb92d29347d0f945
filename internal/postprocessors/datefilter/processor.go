// Package datefilter provides a post-processor that keeps only chunks whose
// created_at falls within an inclusive date range.
package datefilter

import (
	"context"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.PostProcessor = (*Processor)(nil)

// Processor drops chunks created outside its range. Chunks with a missing
// or unparseable created_at are dropped too.
type Processor struct {
	window domain.DateRange
}

// New creates a date filter from ISO-8601 bounds.
func New(from, to string) (*Processor, error) {
	window, err := domain.NewDateRange(from, to)
	if err != nil {
		return nil, err
	}
	return &Processor{window: window}, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "date_filter"
}

// Process returns the chunks inside the range, in their original order.
func (p *Processor) Process(_ context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	var kept []domain.Chunk
	for _, c := range chunks {
		createdAt, _ := c.Metadata[domain.MetaCreatedAt].(string)
		if p.window.ContainsPostTime(createdAt) {
			kept = append(kept, c)
		}
	}
	return kept, nil
}
