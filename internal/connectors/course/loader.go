// Package course provides the loader for scraped course content: a JSON
// array of page records and a directory of markdown files they name.
package course

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
	"github.com/custodia-labs/tdsprep/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader reads course markdown files listed in a page metadata file.
type Loader struct {
	metadataFile string
	markdownDir  string
}

// New creates a course loader.
func New(metadataFile, markdownDir string) *Loader {
	return &Loader{
		metadataFile: metadataFile,
		markdownDir:  markdownDir,
	}
}

// Name returns the loader name.
func (l *Loader) Name() string {
	return "course"
}

// Load returns one raw document per listed file that exists, in metadata
// order. The page record becomes the document metadata. Listed files that
// are missing are skipped.
func (l *Loader) Load(ctx context.Context) ([]domain.RawDocument, error) {
	data, err := os.ReadFile(l.metadataFile)
	if err != nil {
		return nil, fmt.Errorf("read page metadata: %w", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse page metadata %s: %w", l.metadataFile, err)
	}

	docs := make([]domain.RawDocument, 0, len(records))
	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		filename, _ := record[domain.MetaFilename].(string)
		if filename == "" {
			logger.Warn("Page record %d in %s has no filename, skipping", i, l.metadataFile)
			continue
		}

		path := filepath.Join(l.markdownDir, filename)
		content, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Markdown file %s not found, skipping", path)
			continue
		}
		if err != nil {
			logger.Warn("Cannot read %s, skipping: %v", path, err)
			continue
		}

		docs = append(docs, domain.RawDocument{
			Source:   domain.SourceCourse,
			URI:      path,
			Content:  content,
			Metadata: record,
		})
	}

	logger.Debug("Loaded %d of %d course pages", len(docs), len(records))
	return docs, nil
}
