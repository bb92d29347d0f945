package sqlite

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.RecordReader = (*Reader)(nil)

// Reader reads the chunks mirrored into a database file.
type Reader struct{}

// NewReader creates a reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the stored records. Stored rows are always valid, so the
// invalid count is zero. A missing file is an error, not an empty database.
func (r *Reader) Read(ctx context.Context, path string) ([]domain.Record, int, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, 0, fmt.Errorf("read database: %w", err)
	}

	store, err := NewStore(path)
	if err != nil {
		return nil, 0, err
	}
	defer store.Close()

	records, err := store.Records(ctx)
	if err != nil {
		return nil, 0, err
	}
	return records, 0, nil
}
