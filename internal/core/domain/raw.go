package domain

// Source names identify where a document came from.
// They are persisted as the "source" metadata value.
const (
	// SourceCourse marks authored course markdown.
	SourceCourse = "course_content"

	// SourceForum marks Discourse forum posts.
	SourceForum = "discourse"
)

// RawDocument represents a single input record before normalisation:
// one scraped markdown file or one forum post.
// It is immutable once read.
type RawDocument struct {
	// Source is SourceCourse or SourceForum.
	Source string

	// URI is the original location (file path or post URL).
	URI string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains loader-specific key-value pairs.
	Metadata map[string]any
}
