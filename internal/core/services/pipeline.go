package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driving"
	"github.com/custodia-labs/tdsprep/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.PipelineService = (*PipelineService)(nil)

// Processor names resolved through the processor registry.
const (
	stepChunker    = "chunker"
	stepDateFilter = "date_filter"
	stepEnricher   = "enricher"
)

// PipelineService loads, normalises, chunks, scores and persists
// course and forum content.
type PipelineService struct {
	loaders     driven.LoaderFactory
	normalisers driven.NormaliserRegistry
	processors  driven.ProcessorRegistry
	sinks       driven.SinkFactory
	watcher     driven.ChangeWatcher
}

// NewPipelineService creates a pipeline service.
// The watcher is only needed for Watch and may be nil.
func NewPipelineService(
	loaders driven.LoaderFactory,
	normalisers driven.NormaliserRegistry,
	processors driven.ProcessorRegistry,
	sinks driven.SinkFactory,
	watcher driven.ChangeWatcher,
) *PipelineService {
	return &PipelineService{
		loaders:     loaders,
		normalisers: normalisers,
		processors:  processors,
		sinks:       sinks,
		watcher:     watcher,
	}
}

// Run executes every configured stage once and persists the result.
// Course chunks precede forum chunks in the output.
func (s *PipelineService) Run(ctx context.Context, opts domain.PipelineOptions) (*domain.RunReport, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	report := &domain.RunReport{OutputFile: opts.OutputPath()}
	warnings := logger.Warnings()
	var all []domain.Chunk

	if opts.HasCourseStage() {
		logger.Section("Course content")
		loader := s.loaders.CourseLoader(opts.MarkdownMetadata, opts.MarkdownDir)
		chunks, stage, err := s.runStage(ctx, loader, courseSteps(opts))
		if err != nil {
			return nil, fmt.Errorf("course stage: %w", err)
		}
		report.Course = stage
		all = append(all, chunks...)
		logger.Info("Processed %d course content chunks", stage.Chunks)
	} else {
		logger.Debug("Course stage skipped: markdown_metadata and markdown_dir not both set")
	}

	if opts.HasForumStage() {
		logger.Section("Discourse posts")
		loader := s.loaders.ForumLoader(opts.DiscourseInput)
		chunks, stage, err := s.runStage(ctx, loader, forumSteps(opts))
		if err != nil {
			return nil, fmt.Errorf("forum stage: %w", err)
		}
		report.Forum = stage
		all = append(all, chunks...)
		logger.Info("Processed %d forum chunks (%d posts skipped)", stage.Chunks, stage.Skipped)
	} else {
		logger.Debug("Forum stage skipped: discourse_input not set")
	}

	report.Total = len(all)
	if report.Total == 0 {
		logger.Warn("No chunks produced; writing empty output to %s", report.OutputFile)
	}

	written, err := s.persist(ctx, opts, all)
	if err != nil {
		return nil, err
	}
	report.Written = written
	report.Warnings = logger.Warnings() - warnings

	logger.Info("Saved %d of %d chunks to %s", report.Written, report.Total, report.OutputFile)
	return report, nil
}

// Watch runs the pipeline, then runs it again after every burst of input
// changes until ctx is cancelled. A failed run is reported to onRun and
// does not stop watching.
func (s *PipelineService) Watch(
	ctx context.Context,
	opts domain.PipelineOptions,
	onRun func(*domain.RunReport, error),
) error {
	if s.watcher == nil {
		return fmt.Errorf("%w: no change watcher configured", domain.ErrInvalidInput)
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	paths := opts.InputPaths()
	if len(paths) == 0 {
		return fmt.Errorf("%w: no inputs configured to watch", domain.ErrInvalidInput)
	}

	outputs := []string{opts.OutputPath(), opts.SQLiteOutput}
	changes, err := s.watcher.Watch(ctx, paths, outputs)
	if err != nil {
		return fmt.Errorf("watch inputs: %w", err)
	}

	run := func() {
		report, err := s.Run(ctx, opts)
		if onRun != nil {
			onRun(report, err)
		}
	}

	run()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Info("Input changed, re-running pipeline")
			run()
		}
	}
}

// runStage loads every raw document of one source and runs it through
// normalisation and the processor chain. A loader failure is logged and
// yields an empty stage. Only cancellation and a bad chain abort.
func (s *PipelineService) runStage(
	ctx context.Context,
	loader driven.DocumentLoader,
	steps []driven.ProcessorStep,
) ([]domain.Chunk, domain.StageReport, error) {
	stage := domain.StageReport{Ran: true}

	pipeline, err := s.processors.Chain(steps...)
	if err != nil {
		return nil, stage, fmt.Errorf("build processors: %w", err)
	}

	raws, err := loader.Load(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, stage, ctxErr
		}
		logger.Warn("Failed to load %s input: %v", loader.Name(), err)
		return nil, stage, nil
	}
	stage.Documents = len(raws)

	var chunks []domain.Chunk
	for i := range raws {
		if err := ctx.Err(); err != nil {
			return nil, stage, err
		}

		raw := &raws[i]
		result, err := s.normalisers.Normalise(ctx, raw)
		if err != nil {
			stage.Skipped++
			if errors.Is(err, domain.ErrContentTooShort) {
				logger.Debug("Skipping %s: %v", raw.URI, err)
			} else {
				logger.Warn("Failed to normalise %s: %v", raw.URI, err)
			}
			continue
		}

		docChunks, err := pipeline.Process(ctx, &result.Document)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, stage, ctxErr
			}
			logger.Warn("Failed to process %s: %v", raw.URI, err)
			continue
		}
		chunks = append(chunks, docChunks...)
	}

	if counter, ok := pipeline.(driven.FallbackCounter); ok {
		stage.Fallbacks = counter.Fallbacks()
	}
	stage.Chunks = len(chunks)
	return chunks, stage, nil
}

// persist writes chunks to every configured sink. The count returned is
// the primary (JSON) sink's. Any sink failure fails the run.
func (s *PipelineService) persist(ctx context.Context, opts domain.PipelineOptions, chunks []domain.Chunk) (int, error) {
	sinks, err := s.sinks.Sinks(opts)
	if err != nil {
		return 0, fmt.Errorf("open sinks: %w", err)
	}
	defer func() {
		for _, sink := range sinks {
			if err := sink.Close(); err != nil {
				logger.Warn("Failed to close %s sink: %v", sink.Name(), err)
			}
		}
	}()

	written := 0
	for i, sink := range sinks {
		n, err := sink.Write(ctx, chunks)
		if err != nil {
			return 0, fmt.Errorf("write %s sink: %w", sink.Name(), err)
		}
		if i == 0 {
			written = n
		}
		logger.Debug("Wrote %d chunks to %s sink", n, sink.Name())
	}
	return written, nil
}

// courseSteps chunks then scores course documents.
func courseSteps(opts domain.PipelineOptions) []driven.ProcessorStep {
	return []driven.ProcessorStep{
		{Name: stepChunker, Config: chunkerConfig(opts)},
		{Name: stepEnricher},
	}
}

// forumSteps chunks, optionally filters by date, then scores forum posts.
func forumSteps(opts domain.PipelineOptions) []driven.ProcessorStep {
	steps := []driven.ProcessorStep{{Name: stepChunker, Config: chunkerConfig(opts)}}
	if opts.HasDateFilter() {
		steps = append(steps, driven.ProcessorStep{
			Name: stepDateFilter,
			Config: map[string]any{
				"date_from": opts.DateFrom,
				"date_to":   opts.DateTo,
			},
		})
	}
	return append(steps, driven.ProcessorStep{Name: stepEnricher})
}

// chunkerConfig passes only the chunk settings that override a default.
// An explicit overlap of zero is passed through.
func chunkerConfig(opts domain.PipelineOptions) map[string]any {
	cfg := make(map[string]any)
	if opts.ChunkSize > 0 {
		cfg["chunk_size"] = opts.ChunkSize
	}
	if opts.ChunkOverlap != nil {
		cfg["overlap"] = *opts.ChunkOverlap
	}
	return cfg
}
