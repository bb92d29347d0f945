package driving

import (
	"context"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
)

// PipelineService runs the data preparation pipeline.
type PipelineService interface {
	// Run executes every configured stage once and persists the result.
	Run(ctx context.Context, opts domain.PipelineOptions) (*domain.RunReport, error)

	// Watch runs the pipeline, then runs it again whenever an input changes.
	// onRun is called after every run. Watch returns when ctx is cancelled.
	Watch(ctx context.Context, opts domain.PipelineOptions, onRun func(*domain.RunReport, error)) error
}

// InspectService reads persisted output back.
type InspectService interface {
	// Summarise describes the records in path scoring at least minQuality.
	Summarise(ctx context.Context, path string, minQuality float64) (*domain.OutputSummary, error)

	// Records returns the coerced records in path scoring at least minQuality.
	Records(ctx context.Context, path string, minQuality float64) ([]domain.Record, error)
}
