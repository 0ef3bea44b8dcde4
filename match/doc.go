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


// Package match scores and ranks lost-and-found reports against a query.
//
// The Scorer combines several independent similarity signals:
//   - Lexical token overlap between query and report text
//   - Semantic cosine similarity over text embeddings
//   - Visual similarity from image comparison (claim verification only)
//   - A category-mismatch penalty from a fixed-vocabulary classifier
//
// The Ranker applies the Scorer across a candidate set, filters by a score
// threshold, and returns a bounded, deterministically ordered list. Both are
// pure computations over their inputs; external collaborators are consulted
// once per ranking run (query embedding) or ahead of time (visual scores via
// CompareAll).
package match
