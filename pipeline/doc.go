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

// Package pipeline orchestrates the embedding run: it streams documents
// from a gzipped corpus, accumulates them into fixed-size batches, and for
// each full batch segments, chunks, embeds, normalizes, and persists the
// results to the vector store, the metadata store, and the run catalog.
//
// The driver processes batches strictly in order, one at a time. Documents
// remaining in the accumulator when the corpus ends do not form a batch and
// are never flushed; the driver logs the drop and records the count in the
// run manifest so downstream consumers can detect the loss.
package pipeline
