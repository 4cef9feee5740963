package store

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
)

// VectorStore is a file-pair embedding store: <path> holds the raw row-major
// float32 matrix and <path>.shape the ASCII sidecar describing it.
//
// Append REPLACES the stored matrix with the given batch; calls do not
// accumulate. Not safe for concurrent use.
type VectorStore struct {
	path   string
	logger *slog.Logger
}

var _ EmbeddingStore = (*VectorStore)(nil)

// NewVectorStore creates a vector store bound to the given data file path.
// The sidecar path is derived by appending ".shape".
func NewVectorStore(path string) *VectorStore {
	return &VectorStore{
		path:   path,
		logger: slog.Default().With("component", "vector-store", "path", path),
	}
}

// Path returns the data file path.
func (s *VectorStore) Path() string {
	return s.path
}

// ShapePath returns the sidecar file path.
func (s *VectorStore) ShapePath() string {
	return s.path + ".shape"
}

// Append persists a batch of vectors, replacing any previous contents: the
// sidecar is rewritten with this batch's shape only and the data file is
// truncated to exactly this batch. Replacing existing rows is logged so the
// discard is observable.
func (s *VectorStore) Append(vectors [][]float32) error {
	if len(vectors) == 0 {
		return ErrEmptyBatch
	}

	shape := Shape{Rows: len(vectors), Dim: len(vectors[0])}
	for i, row := range vectors {
		if len(row) != shape.Dim {
			return fmt.Errorf("%w: row 0 has dim %d, row %d has dim %d",
				ErrRaggedBatch, shape.Dim, i, len(row))
		}
	}

	if prev, err := readShape(s.ShapePath()); err == nil && prev.Rows > 0 {
		s.logger.Warn("replacing existing embeddings; previous rows are discarded",
			"discardedRows", prev.Rows,
			"newRows", shape.Rows)
	}

	if err := writeShape(s.ShapePath(), shape); err != nil {
		return fmt.Errorf("failed to write shape sidecar: %w", err)
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create vector file: %w", err)
	}

	w := bufio.NewWriter(file)
	for _, row := range vectors {
		if _, err := w.Write(MarshalRow(row)); err != nil {
			file.Close()
			return fmt.Errorf("failed to write vector row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush vector file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close vector file: %w", err)
	}

	s.logger.Debug("wrote embedding batch", "rows", shape.Rows, "dim", shape.Dim)
	return nil
}

// Fetch returns the vector at row idx. The sidecar determines the layout;
// the read itself is a single O(1) seek.
func (s *VectorStore) Fetch(idx int) ([]float32, error) {
	shape, err := readShape(s.ShapePath())
	if err != nil {
		return nil, fmt.Errorf("failed to read shape sidecar: %w", err)
	}

	if idx < 0 || idx >= shape.Rows {
		return nil, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, idx, shape.Rows)
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector file: %w", err)
	}
	defer file.Close()

	buf := make([]byte, shape.RowBytes())
	if _, err := file.ReadAt(buf, int64(idx)*int64(shape.RowBytes())); err != nil {
		return nil, fmt.Errorf("%w: row %d: %v", ErrTruncatedData, idx, err)
	}

	return UnmarshalRow(buf, shape.Dim)
}

// Rows returns the stored row count from the sidecar.
func (s *VectorStore) Rows() (int, error) {
	shape, err := readShape(s.ShapePath())
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return shape.Rows, nil
}

// Dim returns the stored vector dimension from the sidecar.
func (s *VectorStore) Dim() (int, error) {
	shape, err := readShape(s.ShapePath())
	if err != nil {
		return 0, err
	}
	return shape.Dim, nil
}
