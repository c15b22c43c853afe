package pipeline

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SentenceSegmenter creates a segmenter splitting after '.', '!' or '?' followed by
// whitespace and an upper case letter, and at blank lines
func SentenceSegmenter() SegmentFunc {
	return func(text string) ([]SentenceSpan, error) {
		var spans []SentenceSpan
		start := 0

		emit := func(end int) {
			raw := text[start:end]
			trimmed := strings.TrimSpace(raw)
			if trimmed != "" {
				offset := start + strings.Index(raw, trimmed)
				spans = append(spans, SentenceSpan{Text: trimmed, Start: offset, End: offset + len(trimmed)})
			}
			start = end
		}

		for i := 0; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			next := i + size

			switch {
			case r == '\n' && strings.HasPrefix(strings.TrimLeft(text[next:], " \t\r"), "\n"):
				emit(next)
			case r == '.' || r == '!' || r == '?':
				rest := text[next:]
				trimmed := strings.TrimLeft(rest, " \t\r\n")
				if len(trimmed) < len(rest) {
					following, _ := utf8.DecodeRuneInString(trimmed)
					if trimmed == "" || unicode.IsUpper(following) || unicode.IsDigit(following) || following == '"' {
						emit(next)
					}
				}
			}
			i = next
		}
		emit(len(text))

		return spans, nil
	}
}
