package driven

import (
	"context"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
)

// DocumentLoader reads every raw document of one input source.
// A missing or unreadable input is returned as an error; callers
// decide whether that aborts anything.
type DocumentLoader interface {
	// Name returns the loader name for logging.
	Name() string

	// Load returns all raw documents in input order.
	Load(ctx context.Context) ([]domain.RawDocument, error)
}

// LoaderFactory creates loaders for the configured input paths.
type LoaderFactory interface {
	// CourseLoader reads a page metadata file and its markdown directory.
	CourseLoader(metadataFile, markdownDir string) DocumentLoader

	// ForumLoader reads a forum posts file.
	ForumLoader(postsFile string) DocumentLoader
}
