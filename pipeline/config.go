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

package pipeline

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "250ms" decode.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds configuration for an embedding run.
type Config struct {
	// InputPath is the gzipped JSON-lines corpus to read.
	InputPath string `yaml:"input_path"`

	// EmbeddingHost is the base URL of the embedding service.
	EmbeddingHost string `yaml:"embedding_host"`

	// EmbeddingModel is the embedding model name, recorded in the
	// run manifest.
	EmbeddingModel string `yaml:"embedding_model"`

	// EmbeddingsPath is where the raw float32 vector file is written.
	// The shape sidecar lives at EmbeddingsPath + ".shape".
	EmbeddingsPath string `yaml:"embeddings_path"`

	// MetadataPath is the gzipped JSON-lines metadata file.
	MetadataPath string `yaml:"metadata_path"`

	// CatalogPath is the directory for the run catalog.
	// Empty means an in-memory catalog discarded when the run ends.
	CatalogPath string `yaml:"catalog_path"`

	// ChunkSize is the chunk capacity in runes.
	ChunkSize int `yaml:"chunk_size"`

	// BatchSize is the number of documents accumulated before a flush.
	BatchSize int `yaml:"batch_size"`

	// PrependTitle controls whether new chunks are seeded with the
	// document title.
	PrependTitle bool `yaml:"prepend_title"`

	// TruncateChunks caps closed chunks at ChunkSize runes.
	TruncateChunks bool `yaml:"truncate_chunks"`

	// MaxRetries is the maximum number of attempts per embedding call.
	MaxRetries int `yaml:"max_retries"`

	// RetryDelay is the base delay for exponential backoff.
	RetryDelay Duration `yaml:"retry_delay"`

	// ReportInterval is how often to report progress (number of documents).
	ReportInterval int `yaml:"report_interval"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: "BAAI/bge-base-en",
		EmbeddingsPath: "embeddings.bin",
		MetadataPath:   "metadata.json.gz",
		ChunkSize:      512,
		BatchSize:      128,
		PrependTitle:   true,
		MaxRetries:     3,
		RetryDelay:     Duration(1 * time.Second),
		ReportInterval: 128,
	}
}

// LoadConfig reads a YAML config file, applying defaults for absent fields.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Validate checks that the config can drive a run.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input_path is required")
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.ChunkSize <= 0 {
		return ErrInvalidChunkSize
	}
	return nil
}
