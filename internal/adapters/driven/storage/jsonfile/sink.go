package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.ChunkSink = (*Sink)(nil)

// Sink writes chunks that meet a minimum quality to a JSON file.
type Sink struct {
	path       string
	minQuality float64
}

// NewSink creates a JSON sink writing to path.
func NewSink(path string, minQuality float64) *Sink {
	return &Sink{
		path:       path,
		minQuality: minQuality,
	}
}

// Name returns the sink name.
func (s *Sink) Name() string {
	return "json"
}

// Path returns the output file path.
func (s *Sink) Path() string {
	return s.path
}

// Write replaces the output file with the chunks scoring at least the
// minimum quality. Metadata is coerced to primitive values.
func (s *Sink) Write(ctx context.Context, chunks []domain.Chunk) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	records := Records(chunks, s.minQuality)
	if err := WriteRecords(s.path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Close releases resources.
func (s *Sink) Close() error {
	return nil
}

// Records converts the chunks that meet minQuality to persisted records,
// keeping their order.
func Records(chunks []domain.Chunk, minQuality float64) []domain.Record {
	records := make([]domain.Record, 0, len(chunks))
	for _, c := range chunks {
		if !domain.MeetsQuality(c.Metadata, minQuality) {
			continue
		}
		records = append(records, domain.Record{
			PageContent: c.Content,
			Metadata:    domain.CoerceMetadata(c.Metadata),
		})
	}
	return records
}

// WriteRecords atomically replaces path with records as indented JSON.
// Parent directories are created as needed.
func WriteRecords(path string, records []domain.Record) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync output: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}
