package services

import (
	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
)

// Configuration keys read by LoadOptions.
const (
	KeyMarkdownMetadata = "markdown_metadata"
	KeyMarkdownDir      = "markdown_dir"
	KeyDiscourseInput   = "discourse_input"
	KeyDateFrom         = "date_from"
	KeyDateTo           = "date_to"
	KeyOutputFile       = "output_file"
	KeySQLiteOutput     = "sqlite_output"
	KeyMinQuality       = "min_quality"
	KeyChunkSize        = "chunker.chunk_size"
	KeyChunkOverlap     = "chunker.overlap"
	KeyWatch            = "watch"
)

// LoadOptions reads pipeline options from configuration.
// Absent keys leave the zero value, which skips the stage or
// selects the default.
func LoadOptions(store driven.ConfigStore) domain.PipelineOptions {
	if store == nil {
		return domain.PipelineOptions{}
	}

	opts := domain.PipelineOptions{
		MarkdownMetadata: store.GetString(KeyMarkdownMetadata),
		MarkdownDir:      store.GetString(KeyMarkdownDir),
		DiscourseInput:   store.GetString(KeyDiscourseInput),
		DateFrom:         store.GetString(KeyDateFrom),
		DateTo:           store.GetString(KeyDateTo),
		OutputFile:       store.GetString(KeyOutputFile),
		SQLiteOutput:     store.GetString(KeySQLiteOutput),
		MinQuality:       store.GetFloat(KeyMinQuality),
		ChunkSize:        store.GetInt(KeyChunkSize),
		Watch:            store.GetBool(KeyWatch),
	}
	if _, ok := store.Get(KeyChunkOverlap); ok {
		overlap := store.GetInt(KeyChunkOverlap)
		opts.ChunkOverlap = &overlap
	}
	return opts
}
