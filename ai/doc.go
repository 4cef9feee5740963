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


// Package ai defines the interfaces and configuration for the external AI
// services the pipeline depends on: text embedding and chat completion.
//
// The production implementations live in the openai subpackage and talk to
// any OpenAI-compatible API (OpenAI, Ollama, LocalAI, vLLM). The mock
// subpackage provides deterministic test doubles.
//
// Embedders are treated as black boxes: text in, fixed-length vector out.
// Results are deterministic-enough for a given model but are not guaranteed
// bit-reproducible across model versions.
package ai
