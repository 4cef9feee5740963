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

// Package chunk packs ordered sentence rows into fixed-capacity text chunks
// for embedding. Capacity is counted in runes and the separating space
// between sentences is not counted, so chunk boundaries match the pipeline's
// historical accounting exactly and existing stores stay readable.
//
// Two asymmetries are intentional: a chunk closed by overflow is tagged with
// the row that triggered the overflow, not the rows that filled it, and the
// final buffer is always flushed with a title prefix regardless of the
// title-prefix option. Truncation applies only to chunks closed by overflow.
package chunk
