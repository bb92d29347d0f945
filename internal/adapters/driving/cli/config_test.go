package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
)

func TestConfigCmd_Show(t *testing.T) {
	zero := 0
	settings := &mockSettingsService{opts: domain.PipelineOptions{
		DiscourseInput: "discourse_posts.json",
		MinQuality:     0.3,
		ChunkOverlap:   &zero,
		Watch:          true,
	}}
	setupServices(t, nil, nil, settings)

	stdout, _, err := execute(t, "config", "--config", "custom.toml")
	require.NoError(t, err)
	assert.Equal(t, "custom.toml", settings.path)

	assert.Contains(t, stdout, "discourse_input      discourse_posts.json")
	assert.Contains(t, stdout, "markdown_dir         (not set)")
	assert.Contains(t, stdout, "output_file          "+domain.DefaultOutputFile)
	assert.Contains(t, stdout, "min_quality          0.3")
	assert.Contains(t, stdout, fmt.Sprintf("chunker.chunk_size   %d", domain.DefaultChunkSize))
	assert.Contains(t, stdout, "chunker.overlap      0")
	assert.Contains(t, stdout, "watch                true")
}

func TestConfigCmd_ShowError(t *testing.T) {
	setupServices(t, nil, nil, &mockSettingsService{err: errors.New("bad toml")})

	_, _, err := execute(t, "config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load configuration")
}

func TestConfigCmd_Set(t *testing.T) {
	settings := &mockSettingsService{written: "tdsprep.toml"}
	setupServices(t, nil, nil, settings)

	stdout, _, err := execute(t, "config", "set", "chunker.overlap", "0")
	require.NoError(t, err)

	assert.Equal(t, "", settings.path)
	assert.Equal(t, "chunker.overlap", settings.key)
	assert.Equal(t, "0", settings.value)
	assert.Contains(t, stdout, "Set chunker.overlap = 0 in tdsprep.toml")
}

func TestConfigCmd_SetInvalid(t *testing.T) {
	settings := &mockSettingsService{err: fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, "colour")}
	setupServices(t, nil, nil, settings)

	_, stderr, err := execute(t, "config", "set", "colour", "blue")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "config set failed")
	assert.Contains(t, stderr, "Valid keys: [chunker.overlap watch]")
}

func TestConfigCmd_SetNeedsKeyAndValue(t *testing.T) {
	setupServices(t, nil, nil, &mockSettingsService{})

	_, _, err := execute(t, "config", "set", "watch")
	assert.Error(t, err)
}

func TestConfigCmd_NotConfigured(t *testing.T) {
	setupServices(t, nil, nil, nil)

	_, _, err := execute(t, "config")
	assert.EqualError(t, err, "settings service not configured")

	_, _, err = execute(t, "config", "set", "watch", "true")
	assert.EqualError(t, err, "settings service not configured")
}
