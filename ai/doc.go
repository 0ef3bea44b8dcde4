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


// Package ai provides abstractions for the AI collaborators used by Refind.
//
// This package defines interfaces for text embeddings, photo description,
// and photo comparison. It follows the dependency inversion principle,
// allowing the matching engine and report pipeline to depend on abstractions
// rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around four key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - ImageDescriber: Produces a textual description of an item photo
//   - ImageComparer: Judges whether two photos depict the same item
//   - Provider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Degradation Contract
//
// Every collaborator is best-effort. Callers never propagate a collaborator
// failure as a hard failure of matching or report submission; instead they
// substitute a defined neutral value:
//
//   - Embedding failure degrades to a missing semantic signal
//   - Description failure stores the DescriptionUnavailable placeholder
//   - Comparison failure uses the NeutralVisualScore of 50
//
// # Constructor Return Type Pattern
//
// Public production constructors (openai.NewProvider, openai.NewEmbedder)
// return INTERFACE types to enforce abstraction. Test utility constructors
// (mock.NewMockEmbedder, mock.NewMockImageComparer) return CONCRETE types so
// tests can inject behavior via the mocks' function fields and assert on
// call counts.
package ai
