package text

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
)

// Ensure Cleaner implements the interface.
var _ driven.TextCleaner = (*Cleaner)(nil)

// Cleaner strips markup and noise from text.
// A Cleaner holds only compiled patterns and is safe for concurrent use.
type Cleaner struct {
	quoteBlock *regexp.Regexp
	mention    *regexp.Regexp
	codeBlock  *regexp.Regexp
	bareURL    *regexp.Regexp
	whitespace *regexp.Regexp
	blankLines *regexp.Regexp
}

// New creates a Cleaner with its patterns compiled.
func New() *Cleaner {
	return &Cleaner{
		quoteBlock: regexp.MustCompile(`(?ms)^\[quote=.*?\].*?\[/quote\]\s*`),
		mention:    regexp.MustCompile(`@\w+\b`),
		codeBlock:  regexp.MustCompile("(?s)```.*?```"),
		bareURL:    regexp.MustCompile(`https?://\S+|www\.\S+`),
		whitespace: regexp.MustCompile(`[\s\x{85}\p{Z}]+`),
		blankLines: regexp.MustCompile(`\n\s*\n`),
	}
}

// Clean returns text with markup, bare URLs and redundant whitespace removed.
// When forum is set, quoted replies and @mentions are dropped and fenced code
// blocks are replaced with domain.CodePlaceholder.
func (c *Cleaner) Clean(text string, forum bool) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = StripMarkup(text)

	if forum {
		text = c.quoteBlock.ReplaceAllString(text, "")
		text = c.mention.ReplaceAllString(text, "")
		text = c.codeBlock.ReplaceAllString(text, domain.CodePlaceholder)
	}

	text = c.bareURL.ReplaceAllString(text, "")
	text = c.whitespace.ReplaceAllString(text, " ")
	text = c.blankLines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// StripMarkup removes all tags and keeps the text content with entities
// decoded. Script and style bodies and comments are dropped.
func StripMarkup(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))

	var b strings.Builder
	b.Grow(len(s))
	skip := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF is the only error a strings.Reader produces.
			return b.String()
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			if isHiddenElement(z) {
				skip++
			}
		case html.EndTagToken:
			if isHiddenElement(z) && skip > 0 {
				skip--
			}
		}
	}
}

func isHiddenElement(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch atom.Lookup(name) {
	case atom.Script, atom.Style, atom.Noscript:
		return true
	}
	return false
}
