package pipeline

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillstone/embedpipe/ai/mock"
	"github.com/quillstone/embedpipe/corpus"
	"github.com/quillstone/embedpipe/store"
)

const testDim = 8

// writeCorpus writes lines as a gzipped JSONL corpus file and returns its path.
func writeCorpus(t *testing.T, lines []string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "corpus.json.gz")
	file, err := os.Create(path)
	require.NoError(t, err)

	zw := gzip.NewWriter(file)
	for _, line := range lines {
		_, err := zw.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, file.Close())

	return path
}

// docLine renders one corpus record with a single sentence of n 'a' runes.
func docLine(pageID int, n int) string {
	text := strings.Repeat("a", n-1) + "."
	return fmt.Sprintf(`{"page_id": %d, "title": "Doc %d", "text": %q}`, pageID, pageID, text)
}

func testConfig(t *testing.T, inputPath string) *Config {
	t.Helper()

	dir := t.TempDir()
	config := DefaultConfig()
	config.InputPath = inputPath
	config.EmbeddingsPath = filepath.Join(dir, "embeddings.bin")
	config.MetadataPath = filepath.Join(dir, "metadata.json.gz")
	config.ChunkSize = 100
	config.BatchSize = 2
	config.RetryDelay = Duration(time.Millisecond)
	config.ReportInterval = 1000
	return config
}

func testEmbedder() *mock.Embedder {
	m := mock.NewEmbedder()
	m.Dimension = testDim
	return m
}

func newTestDriver(t *testing.T, config *Config, embedder *mock.Embedder) *Driver {
	t.Helper()

	driver, err := NewDriver(config, embedder, WithProgressWriter(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { driver.Close() })
	return driver
}

func TestNewDriver_Validation(t *testing.T) {
	_, err := NewDriver(nil, testEmbedder())
	assert.ErrorIs(t, err, ErrConfigRequired)

	config := testConfig(t, "corpus.json.gz")
	_, err = NewDriver(config, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	config.BatchSize = 0
	_, err = NewDriver(config, testEmbedder())
	assert.ErrorIs(t, err, ErrInvalidBatchSize)
}

func TestDriver_DropsTrailingPartialBatch(t *testing.T) {
	// Five documents, one 80-rune sentence each, batch size two. Two full
	// batches flush; the fifth document never forms a batch and is dropped.
	lines := make([]string, 0, 5)
	for i := 1; i <= 5; i++ {
		lines = append(lines, docLine(i, 80))
	}
	config := testConfig(t, writeCorpus(t, lines))
	driver := newTestDriver(t, config, testEmbedder())

	result, err := driver.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, result.Documents)
	assert.Equal(t, 2, result.Batches)
	assert.Equal(t, 1, result.DroppedDocuments)
	// Two 80-rune sentences overflow a 100-rune chunk, so each batch
	// yields two chunks.
	assert.Equal(t, 4, result.Chunks)
	assert.Equal(t, testDim, result.Dim)

	// The metadata store accumulates across batches.
	metadata := store.NewMetadataStore(config.MetadataPath)
	count, err := metadata.Count()
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	// The vector store replaces its contents on every append, so only the
	// final batch's rows survive.
	vectors := store.NewVectorStore(config.EmbeddingsPath)
	rows, err := vectors.Rows()
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	manifest, err := driver.Catalog().Manifest()
	require.NoError(t, err)
	assert.Equal(t, result.RunID, manifest.RunID)
	assert.Equal(t, 4, manifest.Rows)
	assert.Equal(t, 2, manifest.Batches)
	assert.Equal(t, 1, manifest.DroppedDocuments)
}

func TestDriver_StoresStayAligned(t *testing.T) {
	lines := []string{docLine(1, 80), docLine(2, 80)}
	config := testConfig(t, writeCorpus(t, lines))
	driver := newTestDriver(t, config, testEmbedder())

	result, err := driver.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, result.Chunks)
	require.Zero(t, result.DroppedDocuments)

	vectors := store.NewVectorStore(config.EmbeddingsPath)
	metadata := store.NewMetadataStore(config.MetadataPath)

	for row := 0; row < result.Chunks; row++ {
		entry, err := metadata.Fetch(row)
		require.NoError(t, err)

		got, err := vectors.Fetch(row)
		require.NoError(t, err)

		want := NormalizeVector(mock.DeterministicVector(entry.TextChunk, testDim))
		assert.Equal(t, want, got, "row %d vector does not match its metadata text", row)
	}

	// The chunk closed by document 2's overflow carries document 2's id
	// even though its text came from document 1.
	first, err := metadata.Fetch(0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.DocID)
	assert.NotContains(t, first.TextChunk, "Doc 1:")
}

func TestDriver_EmptyCorpus(t *testing.T) {
	config := testConfig(t, writeCorpus(t, nil))
	driver := newTestDriver(t, config, testEmbedder())

	result, err := driver.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, result.Documents)
	assert.Zero(t, result.Batches)
	assert.Zero(t, result.Chunks)
	assert.Zero(t, result.DroppedDocuments)
}

func TestDriver_RetriesTransientEmbedderFailures(t *testing.T) {
	embedder := testEmbedder()
	calls := 0
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("connection refused")
		}
		out := make([][]float32, len(texts))
		for i, text := range texts {
			out[i] = mock.DeterministicVector(text, testDim)
		}
		return out, nil
	}

	config := testConfig(t, writeCorpus(t, []string{docLine(1, 80), docLine(2, 80)}))
	driver := newTestDriver(t, config, embedder)

	result, err := driver.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, result.Batches)
}

func TestDriver_FailsAfterRetriesExhausted(t *testing.T) {
	embedder := testEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("connection refused")
	}

	config := testConfig(t, writeCorpus(t, []string{docLine(1, 80), docLine(2, 80)}))
	driver := newTestDriver(t, config, embedder)

	_, err := driver.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to embed batch")
}

func TestDriver_EmbeddingCountMismatch(t *testing.T) {
	embedder := testEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{mock.DeterministicVector("only one", testDim)}, nil
	}

	config := testConfig(t, writeCorpus(t, []string{docLine(1, 80), docLine(2, 80)}))
	driver := newTestDriver(t, config, embedder)

	_, err := driver.Run(context.Background())
	assert.ErrorIs(t, err, ErrEmbeddingCountMismatch)
}

func TestDriver_MalformedCorpusAborts(t *testing.T) {
	lines := []string{docLine(1, 80), docLine(2, 80), "{ not json"}
	config := testConfig(t, writeCorpus(t, lines))
	driver := newTestDriver(t, config, testEmbedder())

	_, err := driver.Run(context.Background())
	assert.ErrorIs(t, err, corpus.ErrMalformedLine)
}

func TestDriver_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	config := testConfig(t, writeCorpus(t, []string{docLine(1, 80)}))
	driver := newTestDriver(t, config, testEmbedder())

	_, err := driver.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDriver_CatalogMapsDocumentsToRows(t *testing.T) {
	config := testConfig(t, writeCorpus(t, []string{docLine(1, 80), docLine(2, 80)}))
	driver := newTestDriver(t, config, testEmbedder())

	_, err := driver.Run(context.Background())
	require.NoError(t, err)

	// Both chunks of the single batch are attributed to document 2: its
	// arrival closed document 1's buffer, and its own text flushed last.
	rows, err := driver.Catalog().RowsForDocument(2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, rows)

	rows, err = driver.Catalog().RowsForDocument(1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
