package corpus

import (
	"strings"
	"unicode"

	"github.com/quillstone/embedpipe/core"
)

// Segment decomposes a document's text into ordered sentence rows.
// Row order follows the text and must be preserved downstream; it determines
// chunk boundaries.
func Segment(doc *core.DocumentRecord) []core.SentenceRow {
	sentences := SegmentText(doc.Text)
	rows := make([]core.SentenceRow, 0, len(sentences))
	for _, sentence := range sentences {
		rows = append(rows, core.SentenceRow{
			DocumentID: doc.PageID,
			Text:       sentence,
		})
	}
	return rows
}

// SegmentText splits text into sentences. A sentence ends at a run of '.',
// '!' or '?' followed by whitespace or end of text. Whitespace-only fragments
// are dropped.
func SegmentText(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)

		if !isTerminator(r) {
			continue
		}
		// Consume the rest of a terminator run ("...", "?!").
		for i+1 < len(runes) && isTerminator(runes[i+1]) {
			i++
			current.WriteRune(runes[i])
		}
		if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
			flushSentence(&sentences, &current)
			// Skip the whitespace between sentences.
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
		}
	}
	flushSentence(&sentences, &current)

	return sentences
}

func flushSentence(sentences *[]string, current *strings.Builder) {
	sentence := strings.TrimSpace(current.String())
	current.Reset()
	if sentence != "" {
		*sentences = append(*sentences, sentence)
	}
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
