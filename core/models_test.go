package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestChunkID_MatchesContentHash(t *testing.T) {
	chunk := &Chunk{DocumentID: 7, Title: "Title", Text: "Some chunk text."}
	if chunk.ID() != IDFromContent("Some chunk text.") {
		t.Error("Chunk.ID() should hash only the chunk text")
	}
}

func TestMetadataFromChunk(t *testing.T) {
	chunk := Chunk{DocumentID: 42, Title: "Go", Text: "Go:\nA compiled language."}
	entry := MetadataFromChunk(chunk)

	if entry.DocID != 42 {
		t.Errorf("DocID = %d, want 42", entry.DocID)
	}
	if entry.Title != "Go" {
		t.Errorf("Title = %q, want %q", entry.Title, "Go")
	}
	if entry.TextChunk != chunk.Text {
		t.Errorf("TextChunk = %q, want %q", entry.TextChunk, chunk.Text)
	}
}
