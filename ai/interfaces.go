package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatModel forwards a conversation to a hosted completion API and returns
// the first choice's message text. It is a stateless pass-through: sampling
// parameters come from the configuration the model was constructed with.
type ChatModel interface {
	// Complete invokes the completion API once with the given messages.
	// Returns an error if the call fails or the API returns no choices.
	Complete(ctx context.Context, messages []Message) (string, error)
}
