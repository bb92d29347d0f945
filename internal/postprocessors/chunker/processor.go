package chunker

import (
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
	"github.com/custodia-labs/tdsprep/internal/logger"
	"github.com/custodia-labs/tdsprep/internal/normalisers/text"
)

// Ensure Processor implements the interfaces.
var (
	_ driven.PostProcessor   = (*Processor)(nil)
	_ driven.FallbackCounter = (*Processor)(nil)
)

// Processor splits document content into chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
	headers   SectionSplitter
	cleaner   driven.TextCleaner
	splitter  *Splitter

	fallbacks atomic.Int64
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// WithCleaner sets the cleaner applied to course chunks.
func WithCleaner(c driven.TextCleaner) Option {
	return func(p *Processor) {
		if c != nil {
			p.cleaner = c
		}
	}
}

// WithHeaderSplitter replaces the markdown heading splitter.
func WithHeaderSplitter(s SectionSplitter) Option {
	return func(p *Processor) {
		if s != nil {
			p.headers = s
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: domain.DefaultChunkSize,
		overlap:   domain.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}
	if p.headers == nil {
		p.headers = NewHeaderSplitter()
	}
	if p.cleaner == nil {
		p.cleaner = text.New()
	}
	p.splitter = NewSplitter(p.chunkSize, p.overlap)

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Fallbacks returns how many documents were split without headings
// because heading splitting failed.
func (p *Processor) Fallbacks() int {
	return int(p.fallbacks.Load())
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(doc.Content) == "" {
		return nil, nil
	}

	// Forum content is cleaned during normalisation.
	if doc.Source != domain.SourceCourse {
		return p.chunks(doc, p.splitter.Split(doc.Content), nil), nil
	}

	sections, err := p.headers.Split(doc.Content)
	if err != nil {
		logger.Warn("Header split failed for %s, using plain splitting: %v", documentName(doc), err)
		p.fallbacks.Add(1)
		cleaned := p.cleaner.Clean(strings.ToValidUTF8(doc.Content, "\uFFFD"), false)
		return p.chunks(doc, p.splitter.Split(cleaned), nil), nil
	}

	var chunks []domain.Chunk
	for _, section := range sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var pieces []string
		for _, piece := range p.splitter.Split(section.Content) {
			if cleaned := p.cleaner.Clean(piece, false); cleaned != "" {
				pieces = append(pieces, cleaned)
			}
		}
		chunks = append(chunks, p.chunks(doc, pieces, section.Headers)...)
	}

	// Positions run across sections.
	for i := range chunks {
		chunks[i].Position = i
	}
	return chunks, nil
}

// chunks builds one chunk per piece. Metadata is the document metadata,
// then the heading path, then doc_id.
func (p *Processor) chunks(doc *domain.Document, pieces []string, headers map[string]string) []domain.Chunk {
	out := make([]domain.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		id := domain.ContentHash(piece)

		metadata := domain.CopyMetadata(doc.Metadata)
		for k, v := range headers {
			metadata[k] = v
		}
		metadata[domain.MetaDocID] = id

		out = append(out, domain.Chunk{
			ID:         id,
			DocumentID: doc.ID,
			Content:    piece,
			Position:   i,
			Metadata:   metadata,
		})
	}
	return out
}

func documentName(doc *domain.Document) string {
	if name, ok := doc.Metadata[domain.MetaFilename].(string); ok && name != "" {
		return name
	}
	return filepath.Base(doc.URI)
}
