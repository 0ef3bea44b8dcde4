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


// Package reports handles report submission for found and lost items.
//
// The Pipeline type manages the submission workflow:
//   - Describing the attached photo via the vision collaborator, with a
//     placeholder on failure (a submission never fails because a
//     collaborator is down)
//   - Validating and storing the record
//   - Generating the record's text embedding asynchronously on a worker
//     pool, with retry and vector normalization
//
// Errors during async processing are logged but do not fail the submission.
package reports
