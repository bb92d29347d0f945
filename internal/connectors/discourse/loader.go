// Package discourse provides the loader for a Discourse forum posts export:
// a JSON array of post objects.
package discourse

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
	"github.com/custodia-labs/tdsprep/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader reads forum posts from a JSON file.
type Loader struct {
	postsFile string
}

// New creates a forum posts loader.
func New(postsFile string) *Loader {
	return &Loader{postsFile: postsFile}
}

// Name returns the loader name.
func (l *Loader) Name() string {
	return "discourse"
}

// Load returns one raw document per post, in file order, with defaulted
// metadata. Items that are not post objects are skipped.
func (l *Loader) Load(ctx context.Context) ([]domain.RawDocument, error) {
	data, err := os.ReadFile(l.postsFile)
	if err != nil {
		return nil, fmt.Errorf("read forum posts: %w", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse forum posts %s: %w", l.postsFile, err)
	}

	docs := make([]domain.RawDocument, 0, len(items))
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var post domain.ForumPost
		if err := json.Unmarshal(item, &post); err != nil {
			logger.Warn("Forum post %d in %s is malformed, skipping: %v", i, l.postsFile, err)
			continue
		}

		docs = append(docs, domain.RawDocument{
			Source:   domain.SourceForum,
			URI:      postURI(l.postsFile, i, &post),
			Content:  []byte(post.Content),
			Metadata: post.Metadata(),
		})
	}

	logger.Debug("Loaded %d forum posts from %s", len(docs), l.postsFile)
	return docs, nil
}

// postURI identifies a post by its URL, or by its position in the export
// when it has none.
func postURI(file string, index int, post *domain.ForumPost) string {
	if post.URL != "" {
		return post.URL
	}
	return fmt.Sprintf("%s#%d", file, index)
}
