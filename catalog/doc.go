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


// Package catalog maintains a BadgerDB index over a pipeline run.
//
// The catalog records, per chunk ordinal, the content-based chunk id and the
// source document id, plus a per-document index of the rows derived from it.
// A run manifest captures the embedding model, vector dimension, totals and
// the count of documents dropped by the trailing-partial-batch rule, so the
// pipeline's silent data-loss modes are observable after the fact.
//
// Row ordinals align with the metadata store, which accumulates across
// batches. The vector store retains only its most recent batch; consult
// Manifest.Rows against the vector store's row count to detect the
// difference.
package catalog
