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


// Package claims implements the claim lifecycle: who may claim a found
// item, who decides, and what each decision does to the item's status.
//
// A found record starts PENDING. Any user except its reporter may open a
// ClaimRequest against it; a claimant holds at most one active (PENDING or
// APPROVED) claim per item, and re-initiating resumes that claim. Only the
// reporter decides: approval marks the item CLAIMED and records the
// claimant, rejection closes the claim and leaves the item open for
// everyone else. Decisions are terminal.
//
// Each claim owns an append-only chat thread restricted to the claimant and
// the reporter.
package claims
