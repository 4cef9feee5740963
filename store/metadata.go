package store

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/quillstone/embedpipe/core"
)

// MetadataStore persists per-chunk metadata as gzip-compressed JSON lines.
// Append accumulates: each call adds a gzip member in write order, so entry
// positions stay aligned with embedding row indices across batches.
// Not safe for concurrent use.
type MetadataStore struct {
	path   string
	logger *slog.Logger
}

var _ MetadataRepository = (*MetadataStore)(nil)

// NewMetadataStore creates a metadata store bound to the given path.
func NewMetadataStore(path string) *MetadataStore {
	return &MetadataStore{
		path:   path,
		logger: slog.Default().With("component", "metadata-store", "path", path),
	}
}

// Path returns the metadata file path.
func (s *MetadataStore) Path() string {
	return s.path
}

// Append writes one JSON object per line, preserving entry order.
func (s *MetadataStore) Append(entries []core.MetadataEntry) error {
	if len(entries) == 0 {
		return nil
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open metadata file: %w", err)
	}

	gz := gzip.NewWriter(file)
	for _, entry := range entries {
		line, err := json.Marshal(entry)
		if err != nil {
			gz.Close()
			file.Close()
			return fmt.Errorf("failed to encode metadata entry: %w", err)
		}
		line = append(line, '\n')
		if _, err := gz.Write(line); err != nil {
			gz.Close()
			file.Close()
			return fmt.Errorf("failed to write metadata entry: %w", err)
		}
	}

	if err := gz.Close(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush metadata stream: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close metadata file: %w", err)
	}

	s.logger.Debug("appended metadata entries", "entries", len(entries))
	return nil
}

// Fetch scans the decompressed stream to the idx-th line and decodes it.
// Cost is O(idx); this store trades read speed for append simplicity.
func (s *MetadataStore) Fetch(idx int) (*core.MetadataEntry, error) {
	if idx < 0 {
		return nil, fmt.Errorf("%w: entry %d", ErrIndexOutOfRange, idx)
	}

	lines, closeFn, err := s.openLines()
	if err != nil {
		return nil, err
	}
	defer closeFn()

	count := 0
	for lines.Scan() {
		if count == idx {
			var entry core.MetadataEntry
			if err := json.Unmarshal(lines.Bytes(), &entry); err != nil {
				return nil, fmt.Errorf("%w: entry %d: %v", ErrSerializationFailed, idx, err)
			}
			return &entry, nil
		}
		count++
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	return nil, fmt.Errorf("%w: entry %d of %d", ErrIndexOutOfRange, idx, count)
}

// Count returns the number of stored entries by scanning the stream.
func (s *MetadataStore) Count() (int, error) {
	lines, closeFn, err := s.openLines()
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer closeFn()

	count := 0
	for lines.Scan() {
		count++
	}
	if err := lines.Err(); err != nil {
		return 0, fmt.Errorf("failed to read metadata: %w", err)
	}
	return count, nil
}

// openLines opens the gzip stream for line scanning. The gzip reader handles
// the concatenated members produced by successive appends.
func (s *MetadataStore) openLines() (*bufio.Scanner, func(), error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, nil, err
	}

	gz, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("failed to open metadata stream: %w", err)
	}

	lines := bufio.NewScanner(gz)
	lines.Buffer(make([]byte, 64*1024), 16<<20)

	closeFn := func() {
		gz.Close()
		file.Close()
	}
	return lines, closeFn, nil
}
