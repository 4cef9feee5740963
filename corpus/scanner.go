package corpus

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/quillstone/embedpipe/core"
)

// maxLineBytes bounds a single corpus line. Full article bodies occur on one
// line, so the limit is generous.
const maxLineBytes = 16 << 20

// Scanner decodes a gzip-compressed JSONL corpus into DocumentRecords.
// It is lazy, finite and non-restartable; records are produced in file order.
// Not safe for concurrent use.
type Scanner struct {
	file   *os.File
	gz     *gzip.Reader
	lines  *bufio.Scanner
	doc    *core.DocumentRecord
	err    error
	line   int
	closed bool
	logger *slog.Logger
}

// rawRecord mirrors a corpus line. PageID stays raw so a missing field can be
// told apart from a zero value.
type rawRecord struct {
	PageID json.RawMessage `json:"page_id"`
	Title  string          `json:"title"`
	Text   string          `json:"text"`
}

// Open opens a gzip-compressed JSONL corpus file for scanning.
func Open(path string) (*Scanner, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}

	gz, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}

	lines := bufio.NewScanner(gz)
	lines.Buffer(make([]byte, 64*1024), maxLineBytes)

	return &Scanner{
		file:   file,
		gz:     gz,
		lines:  lines,
		logger: slog.Default().With("component", "corpus-scanner"),
	}, nil
}

// Scan advances to the next DocumentRecord. It returns false when the file is
// exhausted or an error occurred; Err reports which.
func (s *Scanner) Scan() bool {
	if s.err != nil || s.closed {
		return false
	}

	for s.lines.Scan() {
		s.line++
		line := strings.TrimSpace(s.lines.Text())

		var raw rawRecord
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			s.err = fmt.Errorf("%w: line %d: %v", ErrMalformedLine, s.line, err)
			return false
		}

		// Lines without a page_id are not documents; skip them.
		if raw.PageID == nil {
			s.logger.Debug("skipping line without page_id", "line", s.line)
			continue
		}

		pageID, err := parsePageID(raw.PageID)
		if err != nil {
			s.err = fmt.Errorf("%w: line %d: %v", ErrInvalidPageID, s.line, err)
			return false
		}

		s.doc = &core.DocumentRecord{
			PageID: pageID,
			Title:  raw.Title,
			Text:   raw.Text,
		}
		return true
	}

	if err := s.lines.Err(); err != nil {
		s.err = fmt.Errorf("failed to read corpus: %w", err)
	}
	return false
}

// Document returns the record produced by the last successful Scan.
func (s *Scanner) Document() *core.DocumentRecord {
	return s.doc
}

// Err returns the first error encountered while scanning, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Close releases the underlying file. The scanner cannot be reused.
func (s *Scanner) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.gz.Close(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// All returns an iterator over the remaining records. Iteration stops at the
// first error; callers must still check Err afterwards.
func (s *Scanner) All() iter.Seq[*core.DocumentRecord] {
	return func(yield func(*core.DocumentRecord) bool) {
		for s.Scan() {
			if !yield(s.doc) {
				return
			}
		}
	}
}

// parsePageID accepts any JSON scalar usable as an integer id: a number
// (integral floats included) or a numeric string.
func parsePageID(raw json.RawMessage) (int64, error) {
	text := strings.TrimSpace(string(raw))
	text = strings.Trim(text, `"`)

	if id, err := strconv.ParseInt(text, 10, 64); err == nil {
		return id, nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("page_id %q: %w", text, err)
	}

	id := int64(f)
	if float64(id) != f {
		return 0, fmt.Errorf("page_id %q is not an integer", text)
	}
	return id, nil
}
