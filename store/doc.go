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


// Package store persists embedding vectors and their per-chunk metadata.
//
// # Vector store
//
// Embeddings live in a file pair: <name> holds the raw row-major float32
// matrix (little-endian) and <name>.shape is an ASCII sidecar with the
// comma-separated shape, e.g. "128,768". The sidecar is the sole source of
// truth for reinterpreting the raw bytes. Fetch reads a single row by index
// in O(1).
//
// Append replaces the file pair with the given batch: the data file is
// truncated and the sidecar rewritten with this batch's shape only. Calls do
// NOT accumulate. This matches the established on-disk behavior consumers
// depend on; replacing an existing store is logged so the data loss is
// observable. See the package tests, which pin this semantics.
//
// # Metadata store
//
// Metadata is gzip-compressed JSON lines, one object per chunk, written in
// embedding order. Unlike the vector store, Append accumulates: each call
// appends a gzip member to the file. Fetch scans to the requested line, so
// read-back cost is O(idx) — a known limitation, not a bug.
//
// Neither store supports concurrent writers.
package store
