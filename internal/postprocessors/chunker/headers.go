package chunker

import (
	"fmt"
	"maps"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
)

// Section is a span of markdown that sits under one heading path.
type Section struct {
	Content string
	// Headers maps "Header 1".."Header 4" to the enclosing heading texts.
	Headers map[string]string
}

// SectionSplitter partitions a document into sections.
type SectionSplitter interface {
	Split(text string) ([]Section, error)
}

// Ensure HeaderSplitter implements the interface.
var _ SectionSplitter = (*HeaderSplitter)(nil)

type headerLevel struct {
	marker string
	name   string
}

// Longest marker first so "##" is not read as "#".
var headerLevels = []headerLevel{
	{"####", "Header 4"},
	{"###", "Header 3"},
	{"##", "Header 2"},
	{"#", "Header 1"},
}

// HeaderSplitter splits markdown at headings of levels 1 to 4.
// Headings are removed from the content; fenced code is never split.
type HeaderSplitter struct{}

// NewHeaderSplitter creates a HeaderSplitter.
func NewHeaderSplitter() *HeaderSplitter {
	return &HeaderSplitter{}
}

type openHeader struct {
	level int
	name  string
}

// Split returns the sections of text in document order. Consecutive lines
// under the same heading path are joined into one section.
// Text that is not valid UTF-8 returns domain.ErrMalformedDocument.
func (h *HeaderSplitter) Split(text string) ([]Section, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", domain.ErrMalformedDocument)
	}

	var (
		sections []Section
		content  []string
		stack    []openHeader
		inCode   bool
		fence    string
	)
	active := map[string]string{}
	current := map[string]string{}

	flush := func(headers map[string]string) {
		if len(content) == 0 {
			return
		}
		sections = append(sections, Section{
			Content: strings.Join(content, "\n"),
			Headers: maps.Clone(headers),
		})
		content = content[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		line = printable(strings.TrimSpace(line))

		if !inCode {
			switch {
			case strings.HasPrefix(line, "```") && strings.Count(line, "```") == 1:
				inCode, fence = true, "```"
			case strings.HasPrefix(line, "~~~"):
				inCode, fence = true, "~~~"
			}
		} else if strings.HasPrefix(line, fence) {
			inCode, fence = false, ""
		}

		if inCode {
			content = append(content, line)
			continue
		}

		if lvl, ok := matchHeader(line); ok {
			depth := len(lvl.marker)
			for len(stack) > 0 && stack[len(stack)-1].level >= depth {
				delete(active, stack[len(stack)-1].name)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, openHeader{level: depth, name: lvl.name})
			active[lvl.name] = strings.TrimSpace(line[len(lvl.marker):])
			flush(current)
		} else if line != "" {
			content = append(content, line)
		} else {
			flush(current)
		}

		current = maps.Clone(active)
	}
	flush(current)

	return aggregate(sections), nil
}

func matchHeader(line string) (headerLevel, bool) {
	for _, lvl := range headerLevels {
		if strings.HasPrefix(line, lvl.marker) &&
			(len(line) == len(lvl.marker) || line[len(lvl.marker)] == ' ') {
			return lvl, true
		}
	}
	return headerLevel{}, false
}

// aggregate merges neighbouring sections with identical heading paths.
func aggregate(sections []Section) []Section {
	var out []Section
	for _, s := range sections {
		if n := len(out); n > 0 && maps.Equal(out[n-1].Headers, s.Headers) {
			out[n-1].Content += "  \n" + s.Content
			continue
		}
		out = append(out, s)
	}
	return out
}

func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
}
