package connectors

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_CourseLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intro.md"), []byte("# Intro"), 0644))
	meta := filepath.Join(dir, "metadata.json")
	require.NoError(t, os.WriteFile(meta, []byte(`[{"filename": "intro.md"}]`), 0644))

	loader := NewFactory().CourseLoader("file://"+meta, dir)
	assert.Equal(t, "course", loader.Name())

	docs, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestFactory_ForumLoader(t *testing.T) {
	posts := filepath.Join(t.TempDir(), "posts.json")
	require.NoError(t, os.WriteFile(posts, []byte(`[{"content": "hello"}]`), 0644))

	loader := NewFactory().ForumLoader(posts)
	assert.Equal(t, "discourse", loader.Name())

	docs, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
