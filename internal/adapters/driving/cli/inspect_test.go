package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
)

func sampleSummary() *domain.OutputSummary {
	return &domain.OutputSummary{
		Path:           "out.json",
		Records:        3,
		Invalid:        1,
		UniqueDocIDs:   3,
		AverageQuality: 0.8667,
		BySource:       map[string]int{"course_content": 1, "discourse": 2},
		ByContentType:  map[string]int{"course_material": 1, "text_question": 2},
	}
}

func TestInspectCmd_Use(t *testing.T) {
	assert.Equal(t, "inspect [file]", inspectCmd.Use)
}

func TestInspectCmd_Summary(t *testing.T) {
	inspect := &mockInspectService{summary: sampleSummary()}
	setupServices(t, nil, inspect, nil)

	stdout, _, err := execute(t, "inspect", "out.json", "--min-quality", "0.4")
	require.NoError(t, err)

	assert.Equal(t, "out.json", inspect.path)
	assert.Equal(t, 0.4, inspect.minQuality)
	assert.Contains(t, stdout, "Records: 3 (1 invalid skipped)")
	assert.Contains(t, stdout, "Unique doc_ids: 3")
	assert.Contains(t, stdout, "Average quality: 0.867")
	assert.Contains(t, stdout, "By source:")
	assert.Contains(t, stdout, "  discourse       2")
	assert.Contains(t, stdout, "By content type:")
}

func TestInspectCmd_JSON(t *testing.T) {
	setupServices(t, nil, &mockInspectService{summary: sampleSummary()}, nil)

	stdout, _, err := execute(t, "inspect", "out.json", "--json")
	require.NoError(t, err)

	var decoded domain.OutputSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, *sampleSummary(), decoded)
}

func TestInspectCmd_Records(t *testing.T) {
	records := []domain.Record{{PageContent: "Short text.", Metadata: map[string]any{"source": "course_content"}}}
	setupServices(t, nil, &mockInspectService{records: records}, nil)

	stdout, _, err := execute(t, "inspect", "out.json", "--records")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"page_content": "Short text.", "metadata": {"source": "course_content"}}]`, stdout)
}

func TestInspectCmd_DefaultsToConfiguredOutput(t *testing.T) {
	inspect := &mockInspectService{summary: sampleSummary()}
	settings := &mockSettingsService{opts: domain.PipelineOptions{OutputFile: "configured.json"}}
	setupServices(t, nil, inspect, settings)

	_, _, err := execute(t, "inspect")
	require.NoError(t, err)
	assert.Equal(t, "configured.json", inspect.path)
}

func TestInspectCmd_DefaultOutputWithoutConfig(t *testing.T) {
	inspect := &mockInspectService{summary: sampleSummary()}
	setupServices(t, nil, inspect, nil)

	_, _, err := execute(t, "inspect")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultOutputFile, inspect.path)
}

func TestInspectCmd_Error(t *testing.T) {
	setupServices(t, nil, &mockInspectService{err: errors.New("no such file")}, nil)

	_, _, err := execute(t, "inspect", "missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inspect failed")
}

func TestInspectCmd_NotConfigured(t *testing.T) {
	setupServices(t, nil, nil, nil)

	_, _, err := execute(t, "inspect", "out.json")
	assert.EqualError(t, err, "inspect service not configured")
}
