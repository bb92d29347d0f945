package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	initial := map[string]any{"markdown_dir": "data/md"}
	store := NewConfigStore(initial)
	require.NotNil(t, store)

	// Later changes to the input map are not seen
	initial["markdown_dir"] = "other"
	assert.Equal(t, "data/md", store.GetString("markdown_dir"))
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Load())
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore(nil)

	require.NoError(t, store.Set("output_file", "a.json"))
	require.NoError(t, store.Set("output_file", "b.json"))

	val, ok := store.Get("output_file")
	assert.True(t, ok)
	assert.Equal(t, "b.json", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"chunker.chunk_size": int64(800),
		"chunker.overlap":    100,
		"min_quality":        0.7,
		"whole":              int64(1),
		"watch":              true,
		"date_from":          "2025-01-01",
	})

	tests := []struct {
		name     string
		actual   any
		expected any
	}{
		{"int64", store.GetInt("chunker.chunk_size"), 800},
		{"int", store.GetInt("chunker.overlap"), 100},
		{"float", store.GetFloat("min_quality"), 0.7},
		{"float from int", store.GetFloat("whole"), 1.0},
		{"bool", store.GetBool("watch"), true},
		{"string", store.GetString("date_from"), "2025-01-01"},
		{"missing string", store.GetString("missing"), ""},
		{"missing int", store.GetInt("missing"), 0},
		{"missing float", store.GetFloat("missing"), 0.0},
		{"missing bool", store.GetBool("missing"), false},
		{"wrong type string", store.GetString("watch"), ""},
		{"wrong type int", store.GetInt("date_from"), 0},
		{"wrong type float", store.GetFloat("date_from"), 0.0},
		{"wrong type bool", store.GetBool("min_quality"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.actual)
		})
	}
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("key", n)
			_ = store.GetInt("key")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("key")
	assert.True(t, ok)
}
