// Package storage selects the persistence adapters for a pipeline run.
package storage

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/tdsprep/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/tdsprep/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
)

// Ensure the factory and reader implement the interfaces.
var (
	_ driven.SinkFactory  = (*SinkFactory)(nil)
	_ driven.RecordReader = (*Reader)(nil)
)

// SinkFactory creates the JSON sink and, when configured, the SQLite mirror.
type SinkFactory struct{}

// NewSinkFactory creates a sink factory.
func NewSinkFactory() *SinkFactory {
	return &SinkFactory{}
}

// Sinks returns the sinks for opts. The JSON sink is always first.
func (f *SinkFactory) Sinks(opts domain.PipelineOptions) ([]driven.ChunkSink, error) {
	sinks := []driven.ChunkSink{jsonfile.NewSink(opts.OutputPath(), opts.MinQuality)}

	if opts.SQLiteOutput != "" {
		mirror, err := sqlite.NewChunkSink(opts.SQLiteOutput, opts.MinQuality)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, mirror)
	}
	return sinks, nil
}

// Reader reads JSON output files and SQLite mirrors, chosen by extension.
type Reader struct {
	json *jsonfile.Reader
	db   *sqlite.Reader
}

// NewReader creates a reader for every output format.
func NewReader() *Reader {
	return &Reader{
		json: jsonfile.NewReader(),
		db:   sqlite.NewReader(),
	}
}

// Read returns the valid records in path and the number of invalid items.
func (r *Reader) Read(ctx context.Context, path string) ([]domain.Record, int, error) {
	if IsDatabase(path) {
		return r.db.Read(ctx, path)
	}
	return r.json.Read(ctx, path)
}

// IsDatabase reports whether path names a SQLite database file.
func IsDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}
