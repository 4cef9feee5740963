package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Chunk IDs are generated with content-based hashing so identical text
// always produces the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DocumentRecord is a single source document read from the corpus file.
// Identity is PageID; records are immutable once read.
type DocumentRecord struct {
	PageID int64  `json:"page_id"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

// SentenceRow is a per-sentence decomposition of a DocumentRecord.
// Row order within a document determines chunk boundaries and must be preserved.
type SentenceRow struct {
	DocumentID int64
	Text       string
}

// Chunk is a contiguous run of sentences from one document, bounded
// (loosely) by a target character length. It is the unit of embedding.
type Chunk struct {
	DocumentID int64
	Title      string
	Text       string
}

// ID returns the content-based identifier for the chunk text.
func (c *Chunk) ID() ID {
	return IDFromContent(c.Text)
}

// MetadataEntry is the persisted per-chunk metadata, positionally aligned
// with the embedding written for the same chunk. The JSON field names are
// part of the on-disk format.
type MetadataEntry struct {
	DocID     int64  `json:"doc_id"`
	Title     string `json:"title"`
	TextChunk string `json:"text_chunk"`
}

// MetadataFromChunk builds the metadata entry persisted for a chunk.
func MetadataFromChunk(c Chunk) MetadataEntry {
	return MetadataEntry{
		DocID:     c.DocumentID,
		Title:     c.Title,
		TextChunk: c.Text,
	}
}
