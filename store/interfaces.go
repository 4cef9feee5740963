package store

import "github.com/quillstone/embedpipe/core"

// EmbeddingStore persists batches of embedding vectors with random-access
// read-back by row index.
type EmbeddingStore interface {
	// Append persists a batch of vectors. See VectorStore for the
	// replace-on-append semantics of the file-pair implementation.
	Append(vectors [][]float32) error

	// Fetch returns the vector at row idx.
	// Returns ErrIndexOutOfRange if idx exceeds the stored row count.
	Fetch(idx int) ([]float32, error)

	// Rows returns the number of stored rows.
	Rows() (int, error)
}

// MetadataRepository persists per-chunk metadata positionally aligned with
// the embedding store.
type MetadataRepository interface {
	// Append writes entries in order. Calls accumulate.
	Append(entries []core.MetadataEntry) error

	// Fetch returns the idx-th entry. Cost is O(idx).
	// Returns ErrIndexOutOfRange if idx exceeds the stored entry count.
	Fetch(idx int) (*core.MetadataEntry, error)

	// Count returns the number of stored entries.
	Count() (int, error)
}
