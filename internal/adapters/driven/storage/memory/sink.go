package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.ChunkSink = (*Sink)(nil)

// ErrSinkClosed is returned when writing to a closed sink.
var ErrSinkClosed = errors.New("sink closed")

// Sink keeps the chunks of the latest write in memory.
type Sink struct {
	mu         sync.RWMutex
	minQuality float64
	chunks     []domain.Chunk
	writes     int
	closed     bool
}

// NewSink creates a sink keeping chunks that score at least minQuality.
func NewSink(minQuality float64) *Sink {
	return &Sink{minQuality: minQuality}
}

// Name returns the sink name.
func (s *Sink) Name() string {
	return "memory"
}

// Write replaces the held chunks.
func (s *Sink) Write(ctx context.Context, chunks []domain.Chunk) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrSinkClosed
	}

	kept := make([]domain.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if domain.MeetsQuality(c.Metadata, s.minQuality) {
			kept = append(kept, c)
		}
	}
	s.chunks = kept
	s.writes++
	return len(kept), nil
}

// Chunks returns a copy of the chunks of the latest write.
func (s *Sink) Chunks() []domain.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}

// Writes returns how many writes succeeded.
func (s *Sink) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Close marks the sink closed.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
