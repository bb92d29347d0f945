package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
)

// mockPipelineService records the options it was run with.
type mockPipelineService struct {
	opts    domain.PipelineOptions
	report  *domain.RunReport
	err     error
	runs    int
	watched bool
}

func (m *mockPipelineService) Run(_ context.Context, opts domain.PipelineOptions) (*domain.RunReport, error) {
	m.opts = opts
	m.runs++
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *mockPipelineService) Watch(
	ctx context.Context,
	opts domain.PipelineOptions,
	onRun func(*domain.RunReport, error),
) error {
	m.watched = true
	report, err := m.Run(ctx, opts)
	onRun(report, err)
	return nil
}

// mockInspectService returns fixed results.
type mockInspectService struct {
	path       string
	minQuality float64
	summary    *domain.OutputSummary
	records    []domain.Record
	err        error
}

func (m *mockInspectService) Summarise(_ context.Context, path string, minQuality float64) (*domain.OutputSummary, error) {
	m.path, m.minQuality = path, minQuality
	return m.summary, m.err
}

func (m *mockInspectService) Records(_ context.Context, path string, minQuality float64) ([]domain.Record, error) {
	m.path, m.minQuality = path, minQuality
	return m.records, m.err
}

// mockSettingsService returns fixed options and records Set calls.
type mockSettingsService struct {
	opts    domain.PipelineOptions
	err     error
	path    string
	key     string
	value   string
	written string
}

func (m *mockSettingsService) Options(path string) (domain.PipelineOptions, error) {
	m.path = path
	return m.opts, m.err
}

func (m *mockSettingsService) Set(path, key, value string) (string, error) {
	m.path, m.key, m.value = path, key, value
	if m.err != nil {
		return "", m.err
	}
	return m.written, nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"chunker.overlap", "watch"}
}

// setupServices installs mocks and restores the previous services and
// flag values when the test ends.
func setupServices(
	t *testing.T,
	pipeline *mockPipelineService,
	inspect *mockInspectService,
	settings *mockSettingsService,
) {
	t.Helper()

	oldPipeline, oldInspect, oldSettings := pipelineService, inspectService, settingsService
	SetServices(pipeline, inspect, settings)
	if pipeline == nil {
		pipelineService = nil
	}
	if inspect == nil {
		inspectService = nil
	}
	if settings == nil {
		settingsService = nil
	}

	t.Cleanup(func() {
		pipelineService, inspectService, settingsService = oldPipeline, oldInspect, oldSettings
		resetFlags(rootCmd)
	})
}

// resetFlags restores every flag to its default so that values do not
// leak between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
