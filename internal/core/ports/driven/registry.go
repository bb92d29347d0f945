package driven

import (
	"context"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for a document.
type NormaliserRegistry interface {
	// Normalise transforms a raw document using the normaliser for its source.
	// Returns domain.ErrUnsupportedType if no normaliser handles the source.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)
}

// ProcessorStep names a registered processor and its config.
type ProcessorStep struct {
	Name   string
	Config map[string]any
}

// ProcessorRegistry builds post-processors by name.
type ProcessorRegistry interface {
	// Build creates a processor with processor-specific config.
	Build(name string, cfg map[string]any) (PostProcessor, error)

	// Chain builds every step and chains them in order.
	Chain(steps ...ProcessorStep) (PostProcessorPipeline, error)
}
