// Package chunker splits article text into an ordered sequence of
// snippet segments.
package chunker

import (
	"strings"
	"unicode"

	"github.com/nikbrunner/snip/internal/model"
)

// FixedLength is the target size, in runes, of a fixed-length segment.
// Segments break at word boundaries, so most come out shorter.
const FixedLength = 280

// Func is the chunking contract consumed by session restore and the
// application state: a pure function from article text and mode to an
// ordered segment list.
type Func func(text string, mode model.Mode) []string

// Chunk splits text by the given mode. Unknown modes fall back to
// sentence splitting. Segments are trimmed and empty ones dropped; the
// result is never nil.
func Chunk(text string, mode model.Mode) []string {
	switch mode {
	case model.ModeParagraph:
		return paragraphs(text)
	case model.ModeFixed:
		return fixed(text, FixedLength)
	default:
		return sentences(text)
	}
}

// WithFixedLength returns a Func that behaves like Chunk but uses a
// custom rune limit for fixed-length segments. Limits below 1 fall
// back to FixedLength.
func WithFixedLength(limit int) Func {
	if limit <= 0 {
		limit = FixedLength
	}
	return func(text string, mode model.Mode) []string {
		if mode == model.ModeFixed {
			return fixed(text, limit)
		}
		return Chunk(text, mode)
	}
}

// sentences splits on terminal punctuation (., !, ?) followed by
// whitespace, keeping the punctuation with its sentence. Runs of
// terminators ("?!", "...") stay together.
func sentences(text string) []string {
	var out []string
	var b strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		b.WriteRune(r)

		if !isTerminator(r) {
			continue
		}
		// Consume the rest of the terminator run.
		for i+1 < len(runes) && isTerminator(runes[i+1]) {
			i++
			b.WriteRune(runes[i])
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}

		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, s)
		}
		b.Reset()
	}

	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	if out == nil {
		return []string{}
	}
	return out
}

// paragraphs splits on blank lines. Single newlines inside a paragraph
// are preserved.
func paragraphs(text string) []string {
	out := []string{}
	for _, block := range strings.Split(normalizeNewlines(text), "\n\n") {
		if s := strings.TrimSpace(block); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// fixed wraps text into segments of at most limit runes, breaking at
// word boundaries. A single word longer than the limit becomes its own
// segment rather than being cut mid-word.
func fixed(text string, limit int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{}
	}

	var out []string
	var b strings.Builder
	length := 0

	for _, w := range words {
		wlen := len([]rune(w))
		if length > 0 && length+1+wlen > limit {
			out = append(out, b.String())
			b.Reset()
			length = 0
		}
		if length > 0 {
			b.WriteByte(' ')
			length++
		}
		b.WriteString(w)
		length += wlen
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
