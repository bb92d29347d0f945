package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.RecordReader = (*Reader)(nil)

// Reader reads a persisted JSON output file.
type Reader struct{}

// NewReader creates a reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the records of the file at path with metadata coerced.
// Items that are not objects or have no page_content are counted as
// invalid and skipped. Metadata that is not an object is read as empty.
func (r *Reader) Read(ctx context.Context, path string) ([]domain.Record, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read output: %w", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, 0, fmt.Errorf("parse output %s: %w", path, err)
	}

	records := make([]domain.Record, 0, len(items))
	invalid := 0
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		rec, ok := decodeRecord(item)
		if !ok {
			invalid++
			continue
		}
		records = append(records, rec)
	}
	return records, invalid, nil
}

func decodeRecord(item json.RawMessage) (domain.Record, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
		return domain.Record{}, false
	}

	var content string
	if err := json.Unmarshal(fields["page_content"], &content); err != nil || content == "" {
		return domain.Record{}, false
	}

	metadata := map[string]any{}
	if raw, ok := fields["metadata"]; ok {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var decoded map[string]any
		if err := dec.Decode(&decoded); err == nil && decoded != nil {
			metadata = decoded
		}
	}

	return domain.Record{
		PageContent: content,
		Metadata:    domain.CoerceMetadata(metadata),
	}, true
}
