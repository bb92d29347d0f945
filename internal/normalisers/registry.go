package normalisers

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
	"github.com/custodia-labs/tdsprep/internal/normalisers/course"
	"github.com/custodia-labs/tdsprep/internal/normalisers/discourse"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches raw documents to normalisers by source.
type Registry struct {
	bySource map[string]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bySource: make(map[string]driven.Normaliser)}
}

// NewDefaultRegistry creates a registry with the course and forum
// normalisers registered.
func NewDefaultRegistry(cleaner driven.TextCleaner) *Registry {
	r := NewRegistry()
	r.Register(course.New())
	r.Register(discourse.New(cleaner))
	return r
}

// Register adds a normaliser, replacing any registered for the same source.
func (r *Registry) Register(n driven.Normaliser) {
	r.bySource[n.Source()] = n
}

// Normalise transforms a raw document using the normaliser for its source.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	n, ok := r.bySource[raw.Source]
	if !ok {
		return nil, fmt.Errorf("%w: source %q", domain.ErrUnsupportedType, raw.Source)
	}
	return n.Normalise(ctx, raw)
}

// Sources returns the registered sources, sorted.
func (r *Registry) Sources() []string {
	sources := make([]string, 0, len(r.bySource))
	for s := range r.bySource {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	return sources
}
