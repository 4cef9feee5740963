package catalog

import "encoding/binary"

// Key prefixes for the catalog keyspace.
const (
	manifestKey    = "manifest"
	chunkRowPrefix = "chunk:"
	docIndexPrefix = "doc:"
)

// makeChunkRowKey generates a key for a chunk by its row ordinal.
// Rows are written BigEndian so lexicographic iteration follows row order.
func makeChunkRowKey(row int) []byte {
	buf := make([]byte, len(chunkRowPrefix)+8)
	offset := copy(buf, chunkRowPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(row))
	return buf
}

// makeDocIndexKey generates a composite key for the document index.
// Format: doc:<docID>:<row>
func makeDocIndexKey(docID int64, row int) []byte {
	buf := make([]byte, len(docIndexPrefix)+17)
	offset := copy(buf, docIndexPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	offset += 8
	buf[offset] = ':'
	offset++
	binary.BigEndian.PutUint64(buf[offset:], uint64(row))
	return buf
}

// makeDocIndexPrefix generates the iteration prefix for one document's rows.
func makeDocIndexPrefix(docID int64) []byte {
	buf := make([]byte, len(docIndexPrefix)+9)
	offset := copy(buf, docIndexPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	buf[offset+8] = ':'
	return buf
}

// rowFromDocIndexKey recovers the row ordinal from a document index key.
func rowFromDocIndexKey(key []byte) int {
	return int(binary.BigEndian.Uint64(key[len(key)-8:]))
}
