package sqlite

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
	"github.com/custodia-labs/tdsprep/internal/logger"
)

// Ensure ChunkSink implements the interface.
var _ driven.ChunkSink = (*ChunkSink)(nil)

// ChunkSink mirrors the pipeline output into a Store.
type ChunkSink struct {
	store      *Store
	minQuality float64
}

// NewChunkSink opens the database at path and returns a sink writing the
// chunks that score at least minQuality.
func NewChunkSink(path string, minQuality float64) (*ChunkSink, error) {
	store, err := NewStore(path)
	if err != nil {
		return nil, err
	}
	return &ChunkSink{store: store, minQuality: minQuality}, nil
}

// Name returns the sink name.
func (s *ChunkSink) Name() string {
	return "sqlite"
}

// Store returns the underlying store.
func (s *ChunkSink) Store() *Store {
	return s.store
}

// Write replaces the stored chunks with those meeting the minimum quality.
func (s *ChunkSink) Write(ctx context.Context, chunks []domain.Chunk) (int, error) {
	kept := make([]domain.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if domain.MeetsQuality(c.Metadata, s.minQuality) {
			kept = append(kept, c)
		}
	}

	run, err := s.store.ReplaceChunks(ctx, kept)
	if err != nil {
		return 0, fmt.Errorf("sqlite %s: %w", s.store.Path(), err)
	}
	logger.Debug("Recorded run %s with %d chunks in %s", run.ID, run.ChunkCount, s.store.Path())
	return run.ChunkCount, nil
}

// Close closes the database.
func (s *ChunkSink) Close() error {
	return s.store.Close()
}
