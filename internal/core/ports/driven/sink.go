package driven

import (
	"context"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
)

// ChunkSink persists the final chunk list of a run.
// A write replaces everything a previous run wrote.
type ChunkSink interface {
	// Name returns the sink name for logging.
	Name() string

	// Write persists the chunks that meet the sink's quality threshold
	// and returns how many were written.
	Write(ctx context.Context, chunks []domain.Chunk) (int, error)

	// Close releases resources.
	Close() error
}

// SinkFactory creates the sinks configured by the pipeline options.
// The first sink returned is the primary JSON output.
type SinkFactory interface {
	Sinks(opts domain.PipelineOptions) ([]ChunkSink, error)
}

// RecordReader reads a persisted output file.
type RecordReader interface {
	// Read returns the valid records and the number of invalid items skipped.
	Read(ctx context.Context, path string) ([]domain.Record, int, error)
}
