package store

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mus-format/mus-go/raw"
)

// float32Size is the encoded size of one vector element.
var float32Size = raw.Float32.Size(0)

// MarshalRow serializes one embedding row as raw little-endian float32s.
func MarshalRow(row []float32) []byte {
	buf := make([]byte, len(row)*float32Size)
	n := 0
	for _, v := range row {
		n += raw.Float32.Marshal(v, buf[n:])
	}
	return buf
}

// UnmarshalRow deserializes one embedding row of the given dimension.
func UnmarshalRow(data []byte, dim int) ([]float32, error) {
	if len(data) < dim*float32Size {
		return nil, fmt.Errorf("%w: row needs %d bytes, have %d", ErrTruncatedData, dim*float32Size, len(data))
	}

	row := make([]float32, dim)
	n := 0
	for i := range row {
		v, m, err := raw.Float32.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
		}
		row[i] = v
		n += m
	}
	return row, nil
}

// Shape is the logical layout of the vector file: rows x dim.
type Shape struct {
	Rows int
	Dim  int
}

// RowBytes returns the byte length of one encoded row.
func (s Shape) RowBytes() int {
	return s.Dim * float32Size
}

// String renders the sidecar format, e.g. "128,768".
func (s Shape) String() string {
	return strconv.Itoa(s.Rows) + "," + strconv.Itoa(s.Dim)
}

// writeShape writes the sidecar file for the given shape.
func writeShape(path string, shape Shape) error {
	return os.WriteFile(path, []byte(shape.String()), 0o644)
}

// readShape parses a sidecar file. The sidecar is the sole source of truth
// for how to reinterpret the raw data file.
func readShape(path string) (Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Shape{}, err
	}

	parts := strings.Split(strings.TrimSpace(string(data)), ",")
	if len(parts) != 2 {
		return Shape{}, fmt.Errorf("%w: expected 2 dimensions, got %q", ErrCorruptSidecar, string(data))
	}

	rows, err := strconv.Atoi(parts[0])
	if err != nil {
		return Shape{}, fmt.Errorf("%w: %v", ErrCorruptSidecar, err)
	}
	dim, err := strconv.Atoi(parts[1])
	if err != nil {
		return Shape{}, fmt.Errorf("%w: %v", ErrCorruptSidecar, err)
	}
	if rows < 0 || dim < 0 {
		return Shape{}, fmt.Errorf("%w: negative dimension in %q", ErrCorruptSidecar, string(data))
	}

	return Shape{Rows: rows, Dim: dim}, nil
}
