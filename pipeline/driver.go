// Copyright 2025 Quillstone Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/quillstone/embedpipe/ai"
	"github.com/quillstone/embedpipe/catalog"
	"github.com/quillstone/embedpipe/chunk"
	"github.com/quillstone/embedpipe/core"
	"github.com/quillstone/embedpipe/corpus"
	"github.com/quillstone/embedpipe/store"
)

// Result summarizes a completed embedding run.
type Result struct {
	// RunID identifies the run in the catalog manifest.
	RunID string

	// Documents is the number of documents read from the corpus,
	// including any dropped from the trailing partial batch.
	Documents int

	// Chunks is the number of chunk rows persisted.
	Chunks int

	// Batches is the number of full batches flushed.
	Batches int

	// DroppedDocuments is the number of documents left in the
	// accumulator when the corpus ended. They were never flushed.
	DroppedDocuments int

	// Dim is the embedding dimensionality, zero if no batch flushed.
	Dim int
}

// Driver runs the embedding pipeline end to end.
type Driver struct {
	config   *Config
	embedder ai.Embedder
	chunker  *chunk.Chunker
	vectors  store.EmbeddingStore
	metadata store.MetadataRepository
	catalog  *catalog.Catalog
	progress io.Writer
	logger   *slog.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used by the driver.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithProgressWriter sets where progress output is written.
// Defaults to os.Stderr.
func WithProgressWriter(w io.Writer) Option {
	return func(d *Driver) {
		d.progress = w
	}
}

// WithVectorStore overrides the embedding store built from the config.
func WithVectorStore(s store.EmbeddingStore) Option {
	return func(d *Driver) {
		d.vectors = s
	}
}

// WithMetadataStore overrides the metadata store built from the config.
func WithMetadataStore(s store.MetadataRepository) Option {
	return func(d *Driver) {
		d.metadata = s
	}
}

// NewDriver creates a driver for the given config and embedder.
// The caller must Close the driver to release the catalog.
func NewDriver(config *Config, embedder ai.Embedder, opts ...Option) (*Driver, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	d := &Driver{
		config:   config,
		embedder: embedder,
		chunker: chunk.NewChunker(
			chunk.WithChunkSize(config.ChunkSize),
			chunk.WithTitlePrefix(config.PrependTitle),
			chunk.WithTruncation(config.TruncateChunks),
		),
		progress: os.Stderr,
		logger:   slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.vectors == nil {
		d.vectors = store.NewVectorStore(config.EmbeddingsPath)
	}
	if d.metadata == nil {
		d.metadata = store.NewMetadataStore(config.MetadataPath)
	}

	cat, err := catalog.Open(config.CatalogPath, config.CatalogPath == "")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	d.catalog = cat

	return d, nil
}

// Close releases the run catalog.
func (d *Driver) Close() error {
	return d.catalog.Close()
}

// Catalog exposes the run catalog for read-back after a run.
func (d *Driver) Catalog() *catalog.Catalog {
	return d.catalog
}

// Run executes the pipeline over the configured corpus.
//
// Documents accumulate until exactly BatchSize are held, then the batch is
// flushed. A flush segments the batch into sentence rows, chunks them,
// embeds the chunk texts, normalizes the vectors, and appends to both
// stores. Documents remaining when the corpus ends never flush; the drop
// is logged and recorded in the manifest.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	scanner, err := corpus.Open(d.config.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer scanner.Close()

	runID := uuid.NewString()
	d.logger.Info("starting embedding run",
		"runID", runID,
		"input", d.config.InputPath,
		"batchSize", d.config.BatchSize,
		"chunkSize", d.config.ChunkSize)

	tracker := NewProgressTracker(d.progress, d.config.ReportInterval)
	tracker.Start()

	result := &Result{RunID: runID}
	batch := make([]*core.DocumentRecord, 0, d.config.BatchSize)
	titles := make(map[int64]string, d.config.BatchSize)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		doc := scanner.Document()
		result.Documents++
		batch = append(batch, doc)
		titles[doc.PageID] = doc.Title

		if len(batch) != d.config.BatchSize {
			continue
		}

		rows, err := d.flush(ctx, runID, batch, titles, result)
		if err != nil {
			return nil, err
		}

		tracker.Increment(len(batch), rows)
		batch = batch[:0]
		titles = make(map[int64]string, d.config.BatchSize)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	result.DroppedDocuments = len(batch)
	if result.DroppedDocuments > 0 {
		d.logger.Warn("dropping trailing partial batch",
			"documents", result.DroppedDocuments,
			"batchSize", d.config.BatchSize)
	}

	if err := d.writeManifest(runID, result); err != nil {
		return nil, err
	}

	tracker.Finish()
	d.logger.Info("embedding run complete",
		"runID", runID,
		"documents", result.Documents,
		"chunks", result.Chunks,
		"batches", result.Batches,
		"droppedDocuments", result.DroppedDocuments,
		"elapsed", tracker.Elapsed())

	return result, nil
}

// flush processes one full batch and returns the number of rows persisted.
func (d *Driver) flush(ctx context.Context, runID string, batch []*core.DocumentRecord, titles map[int64]string, result *Result) (int, error) {
	rows := make([]core.SentenceRow, 0, len(batch))
	for _, doc := range batch {
		rows = append(rows, corpus.Segment(doc)...)
	}

	chunks := d.chunker.Split(rows, titles)
	if len(chunks) == 0 {
		result.Batches++
		return 0, nil
	}

	texts := chunk.Texts(chunks)
	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = d.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, d.config.MaxRetries, time.Duration(d.config.RetryDelay))
	if err != nil {
		return 0, fmt.Errorf("failed to embed batch after %d attempts: %w", d.config.MaxRetries, err)
	}

	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("%w: %d chunks, %d vectors", ErrEmbeddingCountMismatch, len(chunks), len(vectors))
	}

	for i, v := range vectors {
		vectors[i] = NormalizeVector(v)
	}

	if err := d.vectors.Append(vectors); err != nil {
		return 0, fmt.Errorf("failed to append vectors: %w", err)
	}

	entries := make([]core.MetadataEntry, len(chunks))
	for i, c := range chunks {
		entries[i] = core.MetadataFromChunk(c)
	}
	if err := d.metadata.Append(entries); err != nil {
		return 0, fmt.Errorf("failed to append metadata: %w", err)
	}

	startRow := result.Chunks
	if err := d.catalog.RecordBatch(startRow, chunks); err != nil {
		return 0, fmt.Errorf("failed to record batch in catalog: %w", err)
	}

	result.Batches++
	result.Chunks += len(chunks)
	result.Dim = len(vectors[0])

	if err := d.writeManifest(runID, result); err != nil {
		return 0, err
	}

	d.logger.Debug("flushed batch",
		"batch", result.Batches,
		"documents", len(batch),
		"chunks", len(chunks))

	return len(chunks), nil
}

func (d *Driver) writeManifest(runID string, result *Result) error {
	m := &catalog.Manifest{
		RunID:            runID,
		Model:            d.config.EmbeddingModel,
		Dim:              result.Dim,
		Rows:             result.Chunks,
		Batches:          result.Batches,
		DroppedDocuments: result.DroppedDocuments,
	}
	if err := d.catalog.PutManifest(m); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
