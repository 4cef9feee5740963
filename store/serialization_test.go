package store

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalRow_RoundTrip(t *testing.T) {
	row := []float32{0.5, -1.25, 3.0, float32(math.Pi)}

	data := MarshalRow(row)
	assert.Len(t, data, len(row)*4)

	got, err := UnmarshalRow(data, len(row))
	require.NoError(t, err)
	assert.Equal(t, row, got)
}

func TestMarshalRow_LittleEndianLayout(t *testing.T) {
	// The raw layout must stay readable as a plain little-endian float32
	// array; external consumers reinterpret the file through the sidecar.
	data := MarshalRow([]float32{1.0})
	require.Len(t, data, 4)

	bits := binary.LittleEndian.Uint32(data)
	assert.Equal(t, float32(1.0), math.Float32frombits(bits))
}

func TestUnmarshalRow_TruncatedInput(t *testing.T) {
	data := MarshalRow([]float32{1, 2, 3})
	_, err := UnmarshalRow(data[:7], 3)
	assert.ErrorIs(t, err, ErrTruncatedData)
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "128,768", Shape{Rows: 128, Dim: 768}.String())
	assert.Equal(t, "0,0", Shape{}.String())
}
