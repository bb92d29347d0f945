package chunker

import (
	"strings"
	"unicode/utf8"
)

// DefaultSeparators are tried in order: paragraphs, lines, words, characters.
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// Splitter splits text into pieces of at most size characters (code points),
// overlapping neighbours by up to overlap characters. It prefers to break on
// the earliest separator present in the text and recurses with the remaining
// separators for pieces that are still too long. Separators are kept at the
// start of the piece that follows them.
type Splitter struct {
	size       int
	overlap    int
	separators []string
}

// NewSplitter creates a Splitter with the default separators.
func NewSplitter(size, overlap int) *Splitter {
	return &Splitter{
		size:       size,
		overlap:    overlap,
		separators: DefaultSeparators,
	}
}

// Split returns the trimmed, non-empty pieces of text in order.
func (s *Splitter) Split(text string) []string {
	return s.split(text, s.separators)
}

func (s *Splitter) split(text string, separators []string) []string {
	var out []string

	separator := separators[len(separators)-1]
	var rest []string
	for i, sep := range separators {
		if sep == "" {
			separator = ""
			break
		}
		if strings.Contains(text, sep) {
			separator = sep
			rest = separators[i+1:]
			break
		}
	}

	var good []string
	for _, piece := range splitKeepingSeparator(text, separator) {
		if runeLen(piece) < s.size {
			good = append(good, piece)
			continue
		}
		if len(good) > 0 {
			out = append(out, s.merge(good)...)
			good = nil
		}
		if len(rest) == 0 {
			out = append(out, piece)
		} else {
			out = append(out, s.split(piece, rest)...)
		}
	}
	if len(good) > 0 {
		out = append(out, s.merge(good)...)
	}

	return out
}

// merge greedily packs pieces into windows no longer than size, carrying
// up to overlap characters of trailing pieces into the next window.
func (s *Splitter) merge(pieces []string) []string {
	var (
		out     []string
		current []string
		total   int
	)

	for _, piece := range pieces {
		n := runeLen(piece)
		if total+n > s.size && len(current) > 0 {
			if joined := join(current); joined != "" {
				out = append(out, joined)
			}
			for total > s.overlap || (total+n > s.size && total > 0) {
				total -= runeLen(current[0])
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += n
	}

	if joined := join(current); joined != "" {
		out = append(out, joined)
	}
	return out
}

// splitKeepingSeparator splits text on sep, prefixing every piece after the
// first with sep. Empty pieces are dropped. An empty sep splits into
// characters.
func splitKeepingSeparator(text, sep string) []string {
	parts := strings.Split(text, sep)
	if sep != "" {
		for i := 1; i < len(parts); i++ {
			parts[i] = sep + parts[i]
		}
	}

	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func join(pieces []string) string {
	return strings.TrimSpace(strings.Join(pieces, ""))
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
