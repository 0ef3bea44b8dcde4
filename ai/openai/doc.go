// Copyright 2026 Refind Labs
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


// Package openai implements the ai package interfaces against any
// OpenAI-compatible API (Ollama, LocalAI, vLLM, OpenAI itself).
//
// Text embeddings go through the langchaingo embeddings wrapper; photo
// description and comparison send multimodal chat requests with binary
// image parts to a vision-capable model. The comparison reply is parsed
// leniently: the first number found in the response is taken as the 0-100
// verdict, and an unparseable reply degrades to the neutral score.
package openai
