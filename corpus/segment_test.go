package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillstone/embedpipe/core"
)

func TestSegmentText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple sentences",
			text: "First sentence. Second sentence. Third.",
			want: []string{"First sentence.", "Second sentence.", "Third."},
		},
		{
			name: "mixed terminators",
			text: "Really? Yes! Good.",
			want: []string{"Really?", "Yes!", "Good."},
		},
		{
			name: "terminator runs stay together",
			text: "What?! No way... Fine.",
			want: []string{"What?!", "No way...", "Fine."},
		},
		{
			name: "no trailing terminator",
			text: "First. Unterminated fragment",
			want: []string{"First.", "Unterminated fragment"},
		},
		{
			name: "period without following space does not split",
			text: "Version 1.5 shipped. Done.",
			want: []string{"Version 1.5 shipped.", "Done."},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   \n\t ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentText(tt.text))
		})
	}
}

func TestSegment_PreservesOrderAndDocumentID(t *testing.T) {
	doc := &core.DocumentRecord{
		PageID: 9,
		Title:  "Oak",
		Text:   "Oaks are trees. They grow slowly. Acorns feed wildlife.",
	}

	rows := Segment(doc)
	assert.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, int64(9), row.DocumentID, "row %d", i)
	}
	assert.Equal(t, "Oaks are trees.", rows[0].Text)
	assert.Equal(t, "They grow slowly.", rows[1].Text)
	assert.Equal(t, "Acorns feed wildlife.", rows[2].Text)
}
