package domain

// Document is the normalised form of a RawDocument.
// Course documents keep their markdown structure; forum documents
// are already cleaned.
type Document struct {
	// ID is a deterministic identifier derived from the URI.
	ID string

	// Source is SourceCourse or SourceForum.
	Source string

	// URI is the original location (file path or post URL).
	URI string

	// Title is the human-readable title.
	Title string

	// Content is the full text content before chunking.
	Content string

	// Metadata contains arbitrary key-value pairs inherited by every chunk.
	Metadata map[string]any
}

// Chunk is a bounded span of document text paired with metadata.
// Documents are split into chunks for retrieval.
type Chunk struct {
	// ID is the content hash of Content. It is also stored as
	// the "doc_id" metadata value.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any
}

// Content types assigned by the enricher.
const (
	ContentTypeCourse       = "course_material"
	ContentTypeCodeQuestion = "code_question"
	ContentTypeCodeAnswer   = "code_answer"
	ContentTypeTextQuestion = "text_question"
	ContentTypeTextAnswer   = "text_answer"
)

// Metadata keys shared across packages.
const (
	MetaDocID            = "doc_id"
	MetaSource           = "source"
	MetaContentType      = "content_type"
	MetaQualityScore     = "quality_score"
	MetaDomain           = "domain"
	MetaURL              = "url"
	MetaFilename         = "filename"
	MetaTitle            = "title"
	MetaCreatedAt        = "created_at"
	MetaPostType         = "post_type"
	MetaIsAcceptedAnswer = "is_accepted_answer"
	MetaLikeCount        = "like_count"
	MetaReplyCount       = "reply_count"
)

// CodePlaceholder replaces fenced code blocks in forum posts.
// The enricher uses it to classify code questions and answers.
const CodePlaceholder = "[code]"
