package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{
			name: "file:// URI is converted to local path",
			uri:  "file:///data/tds/discourse_posts.json",
			want: "/data/tds/discourse_posts.json",
		},
		{
			name: "file:// URI with spaces",
			uri:  "file:///data/tds/course notes/metadata.json",
			want: "/data/tds/course notes/metadata.json",
		},
		{
			name: "bare path passes through unchanged",
			uri:  "/data/tds/markdown_files",
			want: "/data/tds/markdown_files",
		},
		{
			name: "relative path passes through unchanged",
			uri:  "markdown_files/metadata.json",
			want: "markdown_files/metadata.json",
		},
		{
			name: "empty string passes through",
			uri:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.uri))
		})
	}
}
