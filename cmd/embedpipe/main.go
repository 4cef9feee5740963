// Copyright 2025 Quillstone Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/quillstone/embedpipe/ai"
	"github.com/quillstone/embedpipe/ai/openai"
	"github.com/quillstone/embedpipe/pipeline"
	"github.com/quillstone/embedpipe/store"
)

func main() {
	app := &cli.App{
		Name:  "embedpipe",
		Usage: "Batch embedding pipeline for gzipped JSONL corpora",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Embed a corpus into the vector and metadata stores",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to YAML config file (flags override it)",
					},
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Path to gzipped JSONL corpus",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
					&cli.StringFlag{
						Name:  "embeddings-out",
						Usage: "Output path for the raw vector file",
					},
					&cli.StringFlag{
						Name:  "metadata-out",
						Usage: "Output path for the gzipped metadata file",
					},
					&cli.StringFlag{
						Name:  "catalog",
						Usage: "Directory for the run catalog (in-memory if unset)",
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Chunk capacity in characters",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents per flush",
					},
					&cli.BoolFlag{
						Name:  "prepend-title",
						Usage: "Seed new chunks with the document title",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "truncate-chunks",
						Usage: "Cap closed chunks at chunk-size characters",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embedding calls",
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N documents",
					},
				},
			},
			{
				Name:      "fetch",
				Usage:     "Print the vector and metadata stored at a row index",
				ArgsUsage: "INDEX",
				Action:    fetchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "embeddings",
						Usage: "Path to the raw vector file",
						Value: "embeddings.bin",
					},
					&cli.StringFlag{
						Name:  "metadata",
						Usage: "Path to the gzipped metadata file",
						Value: "metadata.json.gz",
					},
					&cli.IntFlag{
						Name:     "idx",
						Usage:    "Row index to fetch",
						Required: true,
					},
				},
			},
			{
				Name:      "chat",
				Usage:     "Send a single prompt to a chat completion service",
				ArgsUsage: "PROMPT",
				Action:    chatCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Usage: "Chat service host URL",
						Value: "https://api.openai.com/v1",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Chat model name",
						Value: "gpt-3.5-turbo",
					},
					&cli.StringFlag{
						Name:    "token",
						Usage:   "API token (falls back to OPENAI_API_KEY)",
						EnvVars: []string{"OPENAI_API_KEY"},
					},
					&cli.StringFlag{
						Name:  "system",
						Usage: "Optional system prompt",
					},
					&cli.Float64Flag{
						Name:  "temperature",
						Usage: "Sampling temperature",
						Value: 0.7,
					},
					&cli.Float64Flag{
						Name:  "top-p",
						Usage: "Nucleus sampling threshold",
						Value: 1.0,
					},
					&cli.IntFlag{
						Name:  "max-tokens",
						Usage: "Maximum tokens in the completion",
						Value: 256,
					},
					&cli.BoolFlag{
						Name:  "stream",
						Usage: "Stream the completion from the service",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runCommand(c *cli.Context) error {
	ctx := context.Background()

	config, err := buildRunConfig(c)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(config.EmbeddingHost),
		ai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	driver, err := pipeline.NewDriver(config, embedder)
	if err != nil {
		return err
	}
	defer driver.Close()

	fmt.Fprintf(os.Stderr, "Input: %s\n", config.InputPath)
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", config.EmbeddingHost)
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", config.EmbeddingModel)
	fmt.Fprintln(os.Stderr)

	result, err := driver.Run(ctx)
	if err != nil {
		return fmt.Errorf("embedding run failed: %w", err)
	}

	fmt.Printf("Run %s complete: %d documents, %d chunks in %d batches (dim %d)\n",
		result.RunID, result.Documents, result.Chunks, result.Batches, result.Dim)
	if result.DroppedDocuments > 0 {
		fmt.Printf("WARNING: %d trailing documents did not fill a batch and were not embedded\n",
			result.DroppedDocuments)
	}

	return nil
}

// buildRunConfig layers CLI flags over the YAML config file, if any.
func buildRunConfig(c *cli.Context) (*pipeline.Config, error) {
	config := pipeline.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := pipeline.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if c.IsSet("input") {
		config.InputPath = c.String("input")
	}
	if c.IsSet("embedding-host") {
		config.EmbeddingHost = c.String("embedding-host")
	}
	if c.IsSet("embedding-model") {
		config.EmbeddingModel = c.String("embedding-model")
	}
	if c.IsSet("embeddings-out") {
		config.EmbeddingsPath = c.String("embeddings-out")
	}
	if c.IsSet("metadata-out") {
		config.MetadataPath = c.String("metadata-out")
	}
	if c.IsSet("catalog") {
		config.CatalogPath = c.String("catalog")
	}
	if c.IsSet("chunk-size") {
		config.ChunkSize = c.Int("chunk-size")
	}
	if c.IsSet("batch-size") {
		config.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("prepend-title") {
		config.PrependTitle = c.Bool("prepend-title")
	}
	if c.IsSet("truncate-chunks") {
		config.TruncateChunks = c.Bool("truncate-chunks")
	}
	if c.IsSet("max-retries") {
		config.MaxRetries = c.Int("max-retries")
	}
	if c.IsSet("retry-delay") {
		config.RetryDelay = pipeline.Duration(c.Duration("retry-delay"))
	}
	if c.IsSet("report-interval") {
		config.ReportInterval = c.Int("report-interval")
	}

	return config, nil
}

func fetchCommand(c *cli.Context) error {
	idx := c.Int("idx")
	if idx < 0 {
		return fmt.Errorf("idx must be non-negative")
	}

	vectors := store.NewVectorStore(c.String("embeddings"))
	metadata := store.NewMetadataStore(c.String("metadata"))

	vector, err := vectors.Fetch(idx)
	if err != nil {
		return fmt.Errorf("failed to fetch vector %d: %w", idx, err)
	}

	entry, err := metadata.Fetch(idx)
	if err != nil {
		return fmt.Errorf("failed to fetch metadata %d: %w", idx, err)
	}

	fmt.Printf("Row %d\n", idx)
	fmt.Printf("  doc_id: %d\n", entry.DocID)
	fmt.Printf("  title:  %s\n", entry.Title)
	fmt.Printf("  text:   %s\n", entry.TextChunk)
	fmt.Printf("  vector: dim=%d prefix=%v\n", len(vector), vectorPrefix(vector, 8))

	return nil
}

func vectorPrefix(v []float32, n int) []float32 {
	if len(v) < n {
		return v
	}
	return v[:n]
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	prompt := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if prompt == "" {
		return fmt.Errorf("prompt is required")
	}

	aiConfig := ai.NewConfig(
		ai.WithChatHost(c.String("host")),
		ai.WithChatModel(c.String("model")),
		ai.WithToken(c.String("token")),
		ai.WithTemperature(c.Float64("temperature")),
		ai.WithTopP(c.Float64("top-p")),
		ai.WithMaxTokens(c.Int("max-tokens")),
		ai.WithStream(c.Bool("stream")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	chat, err := openai.NewChat(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create chat client: %w", err)
	}

	messages := make([]ai.Message, 0, 2)
	if system := c.String("system"); system != "" {
		messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: system})
	}
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: prompt})

	start := time.Now()
	completion, err := chat.Complete(ctx, messages)
	if err != nil {
		return fmt.Errorf("chat completion failed: %w", err)
	}

	fmt.Println(completion)
	slog.Debug("chat completion finished", "elapsed", time.Since(start))

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
