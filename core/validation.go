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


package core

import "fmt"

// ValidateDocument validates a DocumentRecord according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//
// NOT validated:
//   - PageID (any integer id from the source corpus is accepted)
//   - Title (empty titles occur in real corpora and only affect chunk prefixes)
func ValidateDocument(record *DocumentRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidDocument)
	}

	if record.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyText)
	}

	return nil
}

// ValidateChunk validates a Chunk before it is persisted.
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrEmptyChunk)
	}
	if chunk.Text == "" {
		return ErrEmptyChunk
	}
	return nil
}
