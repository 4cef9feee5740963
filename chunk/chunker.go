package chunk

import (
	"unicode/utf8"

	"github.com/quillstone/embedpipe/core"
)

const (
	// DefaultChunkSize is the default chunk capacity in characters.
	DefaultChunkSize = 512
)

// Chunker reassembles ordered sentence rows into bounded-length text chunks.
//
// The capacity check is sentence-granular: a sentence is never split, so a
// chunk may exceed the configured size. Truncation, when enabled, hard-caps
// closed chunks only; the final flushed chunk is never truncated and is
// always title-prefixed regardless of the prefix flag. Both asymmetries are
// inherited behavior and are pinned by tests.
type Chunker struct {
	chunkSize    int
	prependTitle bool
	truncate     bool
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk capacity in characters.
// Values below 1 fall back to DefaultChunkSize.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size < 1 {
			size = DefaultChunkSize
		}
		c.chunkSize = size
	}
}

// WithTitlePrefix controls whether chunks opened after an overflow are seeded
// with "title:\n". Default is true.
func WithTitlePrefix(enabled bool) Option {
	return func(c *Chunker) {
		c.prependTitle = enabled
	}
}

// WithTruncation controls whether chunks closed at overflow are hard-capped
// to the chunk size. Default is false.
func WithTruncation(enabled bool) Option {
	return func(c *Chunker) {
		c.truncate = enabled
	}
}

// NewChunker creates a chunker with the given options.
func NewChunker(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize:    DefaultChunkSize,
		prependTitle: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ChunkSize returns the configured chunk capacity.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Split groups consecutive sentence rows into chunks. Rows must already be
// ordered by document; titles maps document ids to titles.
//
// A chunk closes when appending the next sentence would push the running
// character count past the capacity. The closed chunk is tagged with the
// document id and title of the row that triggered the overflow, and the new
// buffer is seeded with that row's sentence. A remaining buffer is flushed as
// a final title-prefixed chunk.
func (c *Chunker) Split(rows []core.SentenceRow, titles map[int64]string) []core.Chunk {
	var chunks []core.Chunk
	var buffer string
	var length int
	var documentID int64
	var title string

	for _, row := range rows {
		documentID = row.DocumentID
		sentence := row.Text
		title = titles[documentID]

		if length+utf8.RuneCountInString(sentence) > c.chunkSize {
			if buffer != "" {
				text := buffer
				if c.truncate {
					text = truncateRunes(text, c.chunkSize)
				}
				chunks = append(chunks, core.Chunk{
					DocumentID: documentID,
					Title:      title,
					Text:       text,
				})
			}
			if c.prependTitle {
				buffer = title + ":\n" + sentence
			} else {
				buffer = sentence
			}
			length = utf8.RuneCountInString(buffer)
			continue
		}

		if buffer != "" {
			buffer += " "
		}
		buffer += sentence
		// The separating space is not counted, matching the original
		// accounting.
		length += utf8.RuneCountInString(sentence)
	}

	// The final flushed chunk is always title-prefixed and never truncated.
	if buffer != "" {
		chunks = append(chunks, core.Chunk{
			DocumentID: documentID,
			Title:      title,
			Text:       title + ":\n" + buffer,
		})
	}

	return chunks
}

// Texts returns the chunk texts in order, the shape consumed by embedders.
func Texts(chunks []core.Chunk) []string {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	return texts
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
