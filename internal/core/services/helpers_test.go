package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tdsprep/internal/adapters/driven/storage"
	"github.com/custodia-labs/tdsprep/internal/connectors"
	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
	"github.com/custodia-labs/tdsprep/internal/normalisers"
	"github.com/custodia-labs/tdsprep/internal/normalisers/text"
	"github.com/custodia-labs/tdsprep/internal/postprocessors"
)

const forumURL = "https://discourse.onlinedegree.iitm.ac.in/t/reading-csv/101/2"

// newTestService wires the service to the real file-backed adapters.
func newTestService(watcher driven.ChangeWatcher) *PipelineService {
	cleaner := text.New()
	processors := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processors, cleaner)

	return NewPipelineService(
		connectors.NewFactory(),
		normalisers.NewDefaultRegistry(cleaner),
		processors,
		storage.NewSinkFactory(),
		watcher,
	)
}

// fixture is a set of input files in a temporary directory.
type fixture struct {
	dir          string
	metadataFile string
	markdownDir  string
	postsFile    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	f := &fixture{
		dir:          dir,
		metadataFile: filepath.Join(dir, "metadata.json"),
		markdownDir:  filepath.Join(dir, "markdown_files"),
		postsFile:    filepath.Join(dir, "discourse_posts.json"),
	}
	require.NoError(t, os.MkdirAll(f.markdownDir, 0755))

	f.writePages(t, []map[string]any{
		{"filename": "intro.md", "title": "Intro", "original_url": "https://tds.s-anand.net/#/intro"},
	})
	f.writeMarkdown(t, "intro.md", "# Intro\n\nShort text.")

	f.writePosts(t, []map[string]any{
		{
			"content":            "<p>How do I read a CSV file with pandas in Python?</p>",
			"url":                forumURL,
			"author":             "student1",
			"created_at":         "2025-02-10T08:30:00Z",
			"topic_id":           101,
			"post_id":            2,
			"topic_title":        "Reading CSV",
			"is_accepted_answer": true,
			"like_count":         100,
			"reply_count":        5,
			"tags":               []string{"pandas", "csv"},
		},
		{
			"content":     "I get an error running this:\n```python\nimport pandas as pd\n```\nWhat is wrong?",
			"url":         "https://discourse.onlinedegree.iitm.ac.in/t/import-error/102/1",
			"created_at":  "2025-03-01T12:00:00Z",
			"topic_title": "Import error",
		},
	})
	return f
}

func (f *fixture) writePages(t *testing.T, pages []map[string]any) {
	t.Helper()
	writeJSON(t, f.metadataFile, pages)
}

func (f *fixture) writeMarkdown(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.markdownDir, name), []byte(content), 0644))
}

func (f *fixture) writePosts(t *testing.T, posts []map[string]any) {
	t.Helper()
	writeJSON(t, f.postsFile, posts)
}

// options configures both stages with output under the fixture directory.
func (f *fixture) options() domain.PipelineOptions {
	return domain.PipelineOptions{
		MarkdownMetadata: f.metadataFile,
		MarkdownDir:      f.markdownDir,
		DiscourseInput:   f.postsFile,
		OutputFile:       filepath.Join(f.dir, "processed_data", "tds_combined.json"),
	}
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

// readOutput reads records back through the storage reader.
func readOutput(t *testing.T, path string) []domain.Record {
	t.Helper()
	records, invalid, err := storage.NewReader().Read(context.Background(), path)
	require.NoError(t, err)
	require.Zero(t, invalid)
	return records
}
