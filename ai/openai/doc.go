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


// Package openai implements the ai interfaces against OpenAI-compatible APIs.
//
// Both the embedder and the chat adapter are thin wrappers over langchaingo's
// openai client. They work with the hosted OpenAI API as well as local
// OpenAI-compatible services (Ollama, LocalAI, vLLM); local embedding
// services that do not require authentication get a placeholder token.
package openai
