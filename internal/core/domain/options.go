package domain

import (
	"fmt"
	"math"
)

// Pipeline defaults.
const (
	DefaultOutputFile   = "processed_data/tds_combined.json"
	DefaultChunkSize    = 1200
	DefaultChunkOverlap = 200
)

// PipelineOptions is the single options structure passed to a pipeline run.
// A stage whose required fields are empty is skipped.
type PipelineOptions struct {
	// MarkdownMetadata is the scraped-page metadata JSON file.
	// Together with MarkdownDir it enables the course stage.
	MarkdownMetadata string

	// MarkdownDir holds the scraped markdown files.
	MarkdownDir string

	// DiscourseInput is the forum posts JSON file. It enables the forum stage.
	DiscourseInput string

	// DateFrom and DateTo bound forum post creation dates (inclusive).
	// The filter is applied only when both are set.
	DateFrom string
	DateTo   string

	// OutputFile is the JSON output path (default DefaultOutputFile).
	OutputFile string

	// SQLiteOutput optionally mirrors the output into a SQLite database.
	SQLiteOutput string

	// MinQuality drops chunks scoring below it before persistence.
	MinQuality float64

	// ChunkSize is the size splitter's maximum chunk length. Zero means
	// the default.
	ChunkSize int

	// ChunkOverlap is the number of characters shared by neighbouring
	// chunks. Nil means the default; zero disables overlap.
	ChunkOverlap *int

	// Watch keeps the CLI running, re-running the pipeline whenever an
	// input changes. Run ignores it.
	Watch bool
}

// HasCourseStage reports whether the course content stage is configured.
func (o PipelineOptions) HasCourseStage() bool {
	return o.MarkdownMetadata != "" && o.MarkdownDir != ""
}

// HasForumStage reports whether the forum stage is configured.
func (o PipelineOptions) HasForumStage() bool {
	return o.DiscourseInput != ""
}

// HasDateFilter reports whether both date bounds are set.
func (o PipelineOptions) HasDateFilter() bool {
	return o.DateFrom != "" && o.DateTo != ""
}

// OutputPath returns the JSON output path, applying the default.
func (o PipelineOptions) OutputPath() string {
	if o.OutputFile == "" {
		return DefaultOutputFile
	}
	return o.OutputFile
}

// Validate checks the options before any stage runs.
func (o PipelineOptions) Validate() error {
	if math.IsNaN(o.MinQuality) || math.IsInf(o.MinQuality, 0) {
		return fmt.Errorf("%w: min_quality must be a finite number", ErrInvalidInput)
	}
	if o.ChunkSize < 0 {
		return fmt.Errorf("%w: chunk_size must not be negative", ErrInvalidInput)
	}
	if o.ChunkOverlap != nil && *o.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap must not be negative", ErrInvalidInput)
	}
	if o.HasDateFilter() {
		if _, err := NewDateRange(o.DateFrom, o.DateTo); err != nil {
			return err
		}
	}
	return nil
}

// Overlap returns the configured chunk overlap, applying the default.
func (o PipelineOptions) Overlap() int {
	if o.ChunkOverlap == nil {
		return DefaultChunkOverlap
	}
	return *o.ChunkOverlap
}

// InputPaths returns the input files and directories of the configured stages.
func (o PipelineOptions) InputPaths() []string {
	var paths []string
	if o.HasCourseStage() {
		paths = append(paths, o.MarkdownMetadata, o.MarkdownDir)
	}
	if o.HasForumStage() {
		paths = append(paths, o.DiscourseInput)
	}
	return paths
}
