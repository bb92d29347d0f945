package postprocessors

import (
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
	"github.com/custodia-labs/tdsprep/internal/postprocessors/chunker"
	"github.com/custodia-labs/tdsprep/internal/postprocessors/datefilter"
	"github.com/custodia-labs/tdsprep/internal/postprocessors/enricher"
)

// Processor names.
const (
	Chunker    = "chunker"
	DateFilter = "date_filter"
	Enricher   = "enricher"
)

// RegisterDefaults registers all built-in processors with the registry.
// Chunkers built by the registry share cleaner.
func RegisterDefaults(r *Registry, cleaner driven.TextCleaner) {
	r.Register(Chunker, func(cfg map[string]any) (driven.PostProcessor, error) {
		return buildChunker(cfg, cleaner)
	})
	r.Register(DateFilter, buildDateFilter)
	r.Register(Enricher, func(_ map[string]any) (driven.PostProcessor, error) {
		return enricher.New(), nil
	})
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - chunk_size (int): Characters per chunk (default: 1200)
//   - overlap (int): Overlapping characters between chunks (default: 200)
func buildChunker(cfg map[string]any, cleaner driven.TextCleaner) (driven.PostProcessor, error) {
	opts := []chunker.Option{chunker.WithCleaner(cleaner)}

	if size := getIntFromConfig(cfg, "chunk_size"); size > 0 {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if _, ok := cfg["overlap"]; ok {
		opts = append(opts, chunker.WithOverlap(getIntFromConfig(cfg, "overlap")))
	}

	return chunker.New(opts...), nil
}

// buildDateFilter creates a date filter from the date_from and date_to keys.
func buildDateFilter(cfg map[string]any) (driven.PostProcessor, error) {
	from, _ := cfg["date_from"].(string)
	to, _ := cfg["date_to"].(string)
	return datefilter.New(from, to)
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
