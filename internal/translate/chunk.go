package translate

import (
	"strings"
	"unicode/utf8"
)

// ChunkSize is the largest chunk, in runes, sent in a single translation request.
const ChunkSize = 400

// Chunk splits text on line boundaries into pieces of at most maxSize runes.
// Lines are packed greedily and joined with "\n". A line longer than maxSize
// is emitted on its own, unsplit. Empty chunks are dropped.
// A maxSize of zero or less puts every non-empty line in its own chunk.
func Chunk(text string, maxSize int) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var chunks []string
	var buf strings.Builder
	bufLen := 0

	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			chunks = append(chunks, s)
		}
		buf.Reset()
		bufLen = 0
	}

	for _, line := range lines {
		n := utf8.RuneCountInString(line)

		if bufLen > 0 && (maxSize <= 0 || bufLen+1+n > maxSize) {
			flush()
		}
		if bufLen > 0 {
			buf.WriteByte('\n')
			bufLen++
		}
		buf.WriteString(line)
		bufLen += n
	}
	flush()

	return chunks
}
