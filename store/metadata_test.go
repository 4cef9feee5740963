package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillstone/embedpipe/core"
)

func tempMetadataStore(t *testing.T) *MetadataStore {
	t.Helper()
	return NewMetadataStore(filepath.Join(t.TempDir(), "metadata.json.gz"))
}

func TestMetadataStore_RoundTrip(t *testing.T) {
	s := tempMetadataStore(t)
	entries := []core.MetadataEntry{
		{DocID: 1, Title: "First", TextChunk: "First:\nSome text."},
		{DocID: 2, Title: "Second", TextChunk: "Second:\nOther text."},
	}
	require.NoError(t, s.Append(entries))

	for i, want := range entries {
		got, err := s.Fetch(i)
		require.NoError(t, err, "entry %d", i)
		assert.Equal(t, want, *got, "entry %d", i)
	}
}

func TestMetadataStore_AppendAccumulates(t *testing.T) {
	// Unlike the vector store, metadata appends accumulate: successive
	// batches extend the file and keep their write order.
	s := tempMetadataStore(t)

	require.NoError(t, s.Append([]core.MetadataEntry{
		{DocID: 1, Title: "A", TextChunk: "a"},
		{DocID: 2, Title: "B", TextChunk: "b"},
	}))
	require.NoError(t, s.Append([]core.MetadataEntry{
		{DocID: 3, Title: "C", TextChunk: "c"},
	}))

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	third, err := s.Fetch(2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), third.DocID)
	assert.Equal(t, "c", third.TextChunk)
}

func TestMetadataStore_FetchOutOfRange(t *testing.T) {
	s := tempMetadataStore(t)
	require.NoError(t, s.Append([]core.MetadataEntry{{DocID: 1, TextChunk: "x"}}))

	_, err := s.Fetch(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = s.Fetch(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestMetadataStore_EmptyAppendIsNoop(t *testing.T) {
	s := tempMetadataStore(t)
	require.NoError(t, s.Append(nil))

	count, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMetadataStore_JSONFieldNames(t *testing.T) {
	// The field names are part of the on-disk format.
	s := tempMetadataStore(t)
	require.NoError(t, s.Append([]core.MetadataEntry{
		{DocID: 7, Title: "T", TextChunk: "body"},
	}))

	lines, closeFn, err := s.openLines()
	require.NoError(t, err)
	defer closeFn()

	require.True(t, lines.Scan())
	line := lines.Text()
	assert.Contains(t, line, `"doc_id":7`)
	assert.Contains(t, line, `"title":"T"`)
	assert.Contains(t, line, `"text_chunk":"body"`)
}
