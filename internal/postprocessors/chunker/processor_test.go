package chunker

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/logger"
)

type failingSplitter struct{}

func (failingSplitter) Split(string) ([]Section, error) {
	return nil, errors.New("boom")
}

func courseDoc(content string) *domain.Document {
	return &domain.Document{
		ID:      "doc-1",
		Source:  domain.SourceCourse,
		URI:     "markdown_files/intro.md",
		Content: content,
		Metadata: map[string]any{
			domain.MetaFilename: "intro.md",
			domain.MetaSource:   domain.SourceCourse,
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.chunkSize != domain.DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", domain.DefaultChunkSize, p.chunkSize)
		}
		if p.overlap != domain.DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", domain.DefaultChunkOverlap, p.overlap)
		}
		if p.headers == nil || p.cleaner == nil || p.splitter == nil {
			t.Error("expected default header splitter, cleaner and splitter")
		}
	})

	t.Run("custom chunk size", func(t *testing.T) {
		p := New(WithChunkSize(500))
		if p.chunkSize != 500 {
			t.Errorf("expected chunkSize 500, got %d", p.chunkSize)
		}
	})

	t.Run("custom overlap", func(t *testing.T) {
		p := New(WithOverlap(100))
		if p.overlap != 100 {
			t.Errorf("expected overlap 100, got %d", p.overlap)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		p := New(WithChunkSize(100), WithOverlap(150))
		if p.overlap >= p.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		p := New(WithChunkSize(0), WithOverlap(-1))
		if p.chunkSize != domain.DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", p.chunkSize)
		}
		if p.overlap != domain.DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", p.overlap)
		}
	})
}

func TestProcessor_Name(t *testing.T) {
	p := New()
	if p.Name() != "chunker" {
		t.Errorf("expected name 'chunker', got '%s'", p.Name())
	}
}

func TestProcessor_Process_NilDocument(t *testing.T) {
	_, err := New().Process(context.Background(), nil, nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProcessor_Process_EmptyContent(t *testing.T) {
	p := New()
	chunks, err := p.Process(context.Background(), courseDoc("  \n "), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty content, got %d", len(chunks))
	}
}

func TestProcessor_Process_CourseHeading(t *testing.T) {
	p := New()
	doc := courseDoc("# Intro\nWelcome to the course.")

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}

	c := chunks[0]
	if c.Content != "Welcome to the course." {
		t.Errorf("unexpected content %q", c.Content)
	}
	if c.Metadata["Header 1"] != "Intro" {
		t.Errorf("expected Header 1 'Intro', got %v", c.Metadata["Header 1"])
	}
	want := domain.ContentHash("Welcome to the course.")
	if c.ID != want || c.Metadata[domain.MetaDocID] != want {
		t.Errorf("expected doc_id %s, got ID %s / metadata %v", want, c.ID, c.Metadata[domain.MetaDocID])
	}
	if c.Metadata[domain.MetaFilename] != "intro.md" {
		t.Errorf("expected document metadata to be inherited")
	}
	if c.DocumentID != doc.ID {
		t.Errorf("expected DocumentID '%s', got '%s'", doc.ID, c.DocumentID)
	}
	if _, ok := doc.Metadata[domain.MetaDocID]; ok {
		t.Error("document metadata must not be modified")
	}
}

func TestProcessor_Process_CleansCourseChunks(t *testing.T) {
	p := New()

	chunks, err := p.Process(context.Background(), courseDoc("# H\n<p>Hello</p> see https://example.com"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 || chunks[0].Content != "Hello see" {
		t.Fatalf("expected one cleaned chunk, got %+v", chunks)
	}
}

func TestProcessor_Process_DropsEmptyCleanedChunks(t *testing.T) {
	p := New()

	chunks, err := p.Process(context.Background(), courseDoc("# H\n<br>"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(chunks))
	}
}

func TestProcessor_Process_ForumSizeSplitOnly(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))
	doc := &domain.Document{
		ID:       "post-1",
		Source:   domain.SourceForum,
		Content:  "# not a heading in a forum post, kept as text",
		Metadata: map[string]any{domain.MetaSource: domain.SourceForum},
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != doc.Content {
		t.Errorf("expected content to match document content")
	}
	if _, ok := chunks[0].Metadata["Header 1"]; ok {
		t.Error("forum chunks must not carry header metadata")
	}
	if chunks[0].Metadata[domain.MetaDocID] != domain.ContentHash(doc.Content) {
		t.Error("expected doc_id of the chunk content")
	}
}

func TestProcessor_Process_LargeContent(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))

	content := "# Big\n" + strings.Repeat("Lorem ipsum dolor sit amet. ", 30)
	chunks, err := p.Process(context.Background(), courseDoc(content), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) < 2 {
		t.Errorf("expected multiple chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if chunk.Position != i {
			t.Errorf("expected position %d, got %d", i, chunk.Position)
		}
		if n := utf8.RuneCountInString(chunk.Content); n > 100 {
			t.Errorf("chunk %d has %d characters, limit is 100", i, n)
		}
		if chunk.Metadata["Header 1"] != "Big" {
			t.Errorf("chunk %d lost its heading path", i)
		}
	}
}

func TestProcessor_Process_Deterministic(t *testing.T) {
	p := New(WithChunkSize(50), WithOverlap(10))
	content := "# A\n" + strings.Repeat("alpha beta gamma ", 20) + "\n## B\n" + strings.Repeat("delta ", 30)

	first, err := p.Process(context.Background(), courseDoc(content), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Process(context.Background(), courseDoc(content), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Content != second[i].Content || first[i].ID != second[i].ID {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestProcessor_Process_Fallback(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	p := New(WithHeaderSplitter(failingSplitter{}))

	chunks, err := p.Process(context.Background(), courseDoc("# Intro\n<b>Plain</b> body"), nil)
	if err != nil {
		t.Fatalf("fallback must not fail the document: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "# Intro Plain body" {
		t.Errorf("unexpected fallback content %q", chunks[0].Content)
	}
	if chunks[0].Metadata[domain.MetaDocID] != domain.ContentHash("# Intro Plain body") {
		t.Error("expected doc_id on fallback chunk")
	}
	if p.Fallbacks() != 1 {
		t.Errorf("expected 1 fallback, got %d", p.Fallbacks())
	}
	if !strings.Contains(buf.String(), "intro.md") {
		t.Errorf("expected warning naming the file, got %q", buf.String())
	}
}

func TestProcessor_Process_InvalidUTF8FallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	p := New()

	chunks, err := p.Process(context.Background(), courseDoc("# T\nbad \xff byte"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "# T bad \uFFFD byte" {
		t.Errorf("unexpected content %q", chunks[0].Content)
	}
	if p.Fallbacks() != 1 {
		t.Errorf("expected 1 fallback, got %d", p.Fallbacks())
	}
}

func TestProcessor_Process_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Process(ctx, courseDoc("# A\nbody"), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
