// Package postprocessors provides the per-document processing chain that
// turns a normalised document into scored chunks, and the registry that
// builds its steps from configuration.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
)

// Ensure Pipeline implements the interfaces.
var (
	_ driven.PostProcessorPipeline = (*Pipeline)(nil)
	_ driven.FallbackCounter       = (*Pipeline)(nil)
)

// Pipeline chains multiple PostProcessors and runs them in order.
// It implements the PostProcessorPipeline interface.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the document through all processors in order.
// The first processor receives nil chunks and should create them.
// Later processors filter or enrich. Once no chunks remain the rest are skipped.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", domain.ErrInvalidInput)
	}

	var chunks []domain.Chunk

	for _, processor := range p.processors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		chunks, err = processor.Process(ctx, doc, chunks)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
		if len(chunks) == 0 {
			return nil, nil
		}
	}

	return chunks, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.PostProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Processors returns the processors in execution order.
func (p *Pipeline) Processors() []driven.PostProcessor {
	return p.processors
}

// Fallbacks sums the fallback counts of the processors that keep one.
func (p *Pipeline) Fallbacks() int {
	total := 0
	for _, processor := range p.processors {
		if c, ok := processor.(driven.FallbackCounter); ok {
			total += c.Fallbacks()
		}
	}
	return total
}
