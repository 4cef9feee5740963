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


package store

import "errors"

var (
	// ErrIndexOutOfRange indicates a fetch index past the stored row count.
	// It signals a caller error, not data corruption.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrEmptyBatch indicates an append with no vectors.
	ErrEmptyBatch = errors.New("batch contains no vectors")

	// ErrRaggedBatch indicates a batch whose vectors differ in dimension.
	ErrRaggedBatch = errors.New("batch vectors have mixed dimensions")

	// ErrCorruptSidecar indicates an unreadable or malformed shape sidecar.
	ErrCorruptSidecar = errors.New("corrupt shape sidecar")

	// ErrSerializationFailed indicates a row failed to decode.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrTruncatedData indicates the data file is shorter than the sidecar claims.
	ErrTruncatedData = errors.New("truncated data")
)
