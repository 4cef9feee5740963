package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillstone/embedpipe/core"
)

func rows(docID int64, sentences ...string) []core.SentenceRow {
	out := make([]core.SentenceRow, len(sentences))
	for i, s := range sentences {
		out[i] = core.SentenceRow{DocumentID: docID, Text: s}
	}
	return out
}

func TestSplit_SingleChunkWhenUnderCapacity(t *testing.T) {
	c := NewChunker(WithChunkSize(20))
	titles := map[int64]string{1: "Title"}

	chunks := c.Split(rows(1, "aaaa.", "bbbb.", "cccc."), titles)

	require.Len(t, chunks, 1)
	assert.Equal(t, int64(1), chunks[0].DocumentID)
	assert.Equal(t, "Title", chunks[0].Title)
	// Sentences space-joined; the final flush carries the title prefix.
	assert.Equal(t, "Title:\naaaa. bbbb. cccc.", chunks[0].Text)
}

func TestSplit_TwoChunksWhenCapacityCrossedOnce(t *testing.T) {
	c := NewChunker(WithChunkSize(10))
	titles := map[int64]string{1: "T"}

	chunks := c.Split(rows(1, "aaaaaaa.", "bbbbbbb."), titles)

	require.Len(t, chunks, 2)
	// The closed chunk is the raw buffer, no prefix.
	assert.Equal(t, "aaaaaaa.", chunks[0].Text)
	// The reopened buffer was seeded with the prefix, and the final flush
	// prefixes again. Inherited behavior, pinned on purpose.
	assert.Equal(t, "T:\nT:\nbbbbbbb.", chunks[1].Text)
}

func TestSplit_ChunkMayExceedCapacity(t *testing.T) {
	// The boundary is sentence-granular: once a sentence is admitted the
	// buffer may grow past the capacity without being split.
	c := NewChunker(WithChunkSize(10))
	titles := map[int64]string{1: "T"}

	chunks := c.Split(rows(1, "aaaa.", "bbbb.", "ccccc."), titles)

	// 5 + 5 <= 10 admits the second sentence; the third overflows.
	require.Len(t, chunks, 2)
	assert.Equal(t, "aaaa. bbbb.", chunks[0].Text)
	assert.Greater(t, len(chunks[0].Text), 10)
}

func TestSplit_OverlongSentenceBecomesOwnChunk(t *testing.T) {
	c := NewChunker(WithChunkSize(10))
	titles := map[int64]string{1: "T"}

	chunks := c.Split(rows(1, "aaaaaaaaaaaaaaaaaaaa"), titles)

	// Never split mid-sentence, and no empty chunk is emitted ahead of it.
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Text, "aaaaaaaaaaaaaaaaaaaa")
}

func TestSplit_TruncationCapsClosedChunksOnly(t *testing.T) {
	c := NewChunker(WithChunkSize(10), WithTruncation(true))
	titles := map[int64]string{1: "T"}

	chunks := c.Split(rows(1, "aaaaaaaaaaaa", "bb"), titles)

	require.Len(t, chunks, 2)
	// The closed chunk is hard-capped to the capacity.
	assert.Equal(t, "T:\naaaaaaa", chunks[0].Text)
	assert.Len(t, []rune(chunks[0].Text), 10)
	// The final flushed chunk is never truncated.
	assert.Equal(t, "T:\nT:\nbb", chunks[1].Text)
}

func TestSplit_TitlePrefixDisabled(t *testing.T) {
	c := NewChunker(WithChunkSize(10), WithTitlePrefix(false))
	titles := map[int64]string{1: "T"}

	chunks := c.Split(rows(1, "aaaaaaa.", "bbbbbbb."), titles)

	require.Len(t, chunks, 2)
	// Overflow-seeded buffer carries no prefix when the flag is off...
	assert.Equal(t, "aaaaaaa.", chunks[0].Text)
	// ...but the final flush is prefixed regardless of the flag.
	assert.Equal(t, "T:\nbbbbbbb.", chunks[1].Text)
}

func TestSplit_OverflowTagsTriggeringRow(t *testing.T) {
	// When the overflow row belongs to the next document, the closed chunk
	// is tagged with that row's document id and title even though its text
	// came from the previous document.
	c := NewChunker(WithChunkSize(10))
	titles := map[int64]string{1: "One", 2: "Two"}

	input := append(rows(1, "aaaaaaaa."), rows(2, "bbbbbbbb.")...)
	chunks := c.Split(input, titles)

	require.Len(t, chunks, 2)
	assert.Equal(t, "aaaaaaaa.", chunks[0].Text)
	assert.Equal(t, int64(2), chunks[0].DocumentID)
	assert.Equal(t, "Two", chunks[0].Title)
}

func TestSplit_NoRows(t *testing.T) {
	c := NewChunker()
	assert.Nil(t, c.Split(nil, nil))
	assert.Nil(t, c.Split([]core.SentenceRow{}, map[int64]string{}))
}

func TestSplit_SpaceNotCountedAgainstCapacity(t *testing.T) {
	// Joined length is 11 characters with the space, but only 10 are
	// counted, so both sentences land in one chunk.
	c := NewChunker(WithChunkSize(10))
	titles := map[int64]string{1: "T"}

	chunks := c.Split(rows(1, "aaaaa", "bbbbb"), titles)

	require.Len(t, chunks, 1)
	assert.Equal(t, "T:\naaaaa bbbbb", chunks[0].Text)
}

func TestNewChunker_Defaults(t *testing.T) {
	c := NewChunker()
	assert.Equal(t, DefaultChunkSize, c.ChunkSize())

	c = NewChunker(WithChunkSize(0))
	assert.Equal(t, DefaultChunkSize, c.ChunkSize())
}

func TestTexts(t *testing.T) {
	chunks := []core.Chunk{
		{Text: "first"},
		{Text: "second"},
	}
	assert.Equal(t, []string{"first", "second"}, Texts(chunks))
	assert.Equal(t, []string{}, Texts(nil))
}
