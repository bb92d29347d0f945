package connectors

import (
	"github.com/custodia-labs/tdsprep/internal/connectors/course"
	"github.com/custodia-labs/tdsprep/internal/connectors/discourse"
	"github.com/custodia-labs/tdsprep/internal/connectors/filesystem"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.LoaderFactory = (*Factory)(nil)

// Factory creates file-backed loaders. Paths may be bare or file:// URIs.
type Factory struct{}

// NewFactory creates a loader factory.
func NewFactory() *Factory {
	return &Factory{}
}

// CourseLoader reads a page metadata file and its markdown directory.
func (f *Factory) CourseLoader(metadataFile, markdownDir string) driven.DocumentLoader {
	return course.New(filesystem.ResolvePath(metadataFile), filesystem.ResolvePath(markdownDir))
}

// ForumLoader reads a forum posts file.
func (f *Factory) ForumLoader(postsFile string) driven.DocumentLoader {
	return discourse.New(filesystem.ResolvePath(postsFile))
}
