package openai

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/quillstone/embedpipe/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Chat implements ai.ChatModel against OpenAI-compatible chat completion APIs.
// It is a stateless pass-through: every Complete call forwards one request
// with the sampling parameters captured at construction.
type Chat struct {
	client llms.Model
	config *ai.Config
	logger *slog.Logger
}

var _ ai.ChatModel = (*Chat)(nil)

// NewChat creates a chat completion adapter.
//
// Construction fails with ai.ErrMissingAPIKey when neither the config token
// nor the OPENAI_API_KEY environment variable is set; a misconfigured
// credential should surface at startup, not on the first request.
func NewChat(config *ai.Config) (ai.ChatModel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	token := config.Token
	if token == "" {
		token = os.Getenv("OPENAI_API_KEY")
	}
	if token == "" {
		return nil, ai.ErrMissingAPIKey
	}

	opts := []openai.Option{
		openai.WithToken(token),
		openai.WithModel(config.ChatModel),
	}
	if config.ChatHost != "" {
		opts = append(opts, openai.WithBaseURL(config.ChatHost))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return &Chat{
		client: client,
		config: config,
		logger: slog.Default().With("component", "openai-chat"),
	}, nil
}

// Complete forwards the conversation to the completion API once and returns
// the first choice's message text.
func (c *Chat) Complete(ctx context.Context, messages []ai.Message) (string, error) {
	content := make([]llms.MessageContent, len(messages))
	for i, message := range messages {
		content[i] = llms.MessageContent{
			Role:  chatMessageType(message.Role),
			Parts: []llms.ContentPart{llms.TextPart(message.Content)},
		}
	}

	opts := []llms.CallOption{
		llms.WithTemperature(c.config.Temperature),
		llms.WithTopP(c.config.TopP),
		llms.WithMaxTokens(c.config.MaxTokens),
	}
	if len(c.config.Functions) > 0 {
		opts = append(opts, llms.WithTools(toTools(c.config.Functions)))
	}

	// Streaming still returns the full text; the deltas are accumulated as
	// they arrive.
	var streamed strings.Builder
	if c.config.Stream {
		opts = append(opts, llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			streamed.Write(chunk)
			return nil
		}))
	}

	c.logger.Debug("requesting completion",
		"model", c.config.ChatModel,
		"messages", len(messages),
		"stream", c.config.Stream)

	response, err := c.client.GenerateContent(ctx, content, opts...)
	if err != nil {
		c.logger.Error("completion request failed", "err", err)
		return "", err
	}

	if len(response.Choices) == 0 {
		if c.config.Stream && streamed.Len() > 0 {
			return streamed.String(), nil
		}
		return "", ai.ErrNoChoices
	}

	return response.Choices[0].Content, nil
}

func chatMessageType(role ai.Role) llms.ChatMessageType {
	switch role {
	case ai.RoleSystem:
		return llms.ChatMessageTypeSystem
	case ai.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}

func toTools(functions []ai.FunctionSchema) []llms.Tool {
	tools := make([]llms.Tool, len(functions))
	for i, fn := range functions {
		tools[i] = llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        fn.Name,
				Description: fn.Description,
				Parameters:  fn.Parameters,
			},
		}
	}
	return tools
}
