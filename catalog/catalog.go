package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/mus-format/mus-go/raw"

	"github.com/quillstone/embedpipe/core"
)

// ErrNotFound indicates the requested catalog entry does not exist.
var ErrNotFound = errors.New("catalog entry not found")

// ChunkRef identifies one persisted chunk: its content-based id and the
// document it came from.
type ChunkRef struct {
	ChunkID core.ID
	DocID   int64
}

// Manifest summarizes a pipeline run. It is rewritten on every flush so it
// always mirrors the stores.
type Manifest struct {
	RunID            string `json:"run_id"`
	Model            string `json:"model"`
	Dim              int    `json:"dim"`
	Rows             int    `json:"rows"`
	Batches          int    `json:"batches"`
	DroppedDocuments int    `json:"dropped_documents"`
}

// Catalog wraps a BadgerDB instance holding the run index.
type Catalog struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to the badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens a catalog at the specified directory, creating it if needed.
// With inMemory set, the catalog lives only for the life of the process.
func Open(path string, inMemory bool) (*Catalog, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			if err := os.MkdirAll(path, 0o755); err != nil {
				return nil, err
			}
			info, err = os.Stat(path)
			if err != nil {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", path)
		}
		opts = badger.DefaultOptions(path)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		db:     db,
		logger: slog.Default().With("component", "catalog"),
	}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// RecordBatch indexes a flushed batch of chunks starting at the given row
// ordinal. Each chunk gets a row key and a document index key.
func (c *Catalog) RecordBatch(startRow int, chunks []core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	err := c.db.Update(func(tx *badger.Txn) error {
		for i, chunk := range chunks {
			row := startRow + i
			ref := &ChunkRef{ChunkID: chunk.ID(), DocID: chunk.DocumentID}
			if err := tx.Set(makeChunkRowKey(row), marshalChunkRef(ref)); err != nil {
				return err
			}
			if err := tx.Set(makeDocIndexKey(chunk.DocumentID, row), nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record batch: %w", err)
	}

	c.logger.Debug("recorded chunk batch", "startRow", startRow, "chunks", len(chunks))
	return nil
}

// ChunkAt returns the chunk reference stored for a row ordinal.
func (c *Catalog) ChunkAt(row int) (*ChunkRef, error) {
	var ref *ChunkRef
	err := c.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeChunkRowKey(row))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: row %d", ErrNotFound, row)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			ref, err = unmarshalChunkRef(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return ref, nil
}

// RowsForDocument returns the row ordinals of all chunks derived from a
// document, in row order.
func (c *Catalog) RowsForDocument(docID int64) ([]int, error) {
	var rows []int
	err := c.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDocIndexPrefix(docID)
		opts.PrefetchValues = false

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			rows = append(rows, rowFromDocIndexKey(iter.Item().Key()))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PutManifest stores the run manifest, replacing any previous one.
func (c *Catalog) PutManifest(m *Manifest) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return c.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(manifestKey), data)
	})
}

// Manifest returns the stored run manifest.
func (c *Catalog) Manifest() (*Manifest, error) {
	var m Manifest
	err := c.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(manifestKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: manifest", ErrNotFound)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &m)
		})
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// marshalChunkRef serializes a ChunkRef with a fixed raw layout.
func marshalChunkRef(ref *ChunkRef) []byte {
	buf := make([]byte, raw.Uint64.Size(uint64(ref.ChunkID))+raw.Int64.Size(ref.DocID))
	n := raw.Uint64.Marshal(uint64(ref.ChunkID), buf)
	raw.Int64.Marshal(ref.DocID, buf[n:])
	return buf
}

// unmarshalChunkRef deserializes a ChunkRef.
func unmarshalChunkRef(data []byte) (*ChunkRef, error) {
	id, n, err := raw.Uint64.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	docID, _, err := raw.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	return &ChunkRef{ChunkID: core.ID(id), DocID: docID}, nil
}
