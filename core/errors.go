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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidFoundRecord indicates a FoundRecord failed validation.
	ErrInvalidFoundRecord = errors.New("invalid found record")

	// ErrInvalidLostRecord indicates a LostRecord failed validation.
	ErrInvalidLostRecord = errors.New("invalid lost record")

	// ErrInvalidClaimRequest indicates a ClaimRequest failed validation.
	ErrInvalidClaimRequest = errors.New("invalid claim request")

	// ErrInvalidChatMessage indicates a ChatMessage failed validation.
	ErrInvalidChatMessage = errors.New("invalid chat message")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyProof indicates the claimant supplied no proof description.
	ErrEmptyProof = errors.New("proof description cannot be empty")

	// ErrEmptyBody indicates a chat message with no text.
	ErrEmptyBody = errors.New("message body cannot be empty")

	// ErrMissingReporter indicates a report without a reporting user.
	ErrMissingReporter = errors.New("reporter reference is required")

	// ErrMissingParty indicates a claim without a found record or claimant.
	ErrMissingParty = errors.New("claim must reference a found record and a claimant")

	// ErrInvalidDate indicates a report dated in the future.
	ErrInvalidDate = errors.New("report date cannot be in the future")

	// ErrInvalidFoundStatus indicates an invalid FoundStatus value.
	ErrInvalidFoundStatus = errors.New("invalid found record status")

	// ErrInvalidClaimStatus indicates an invalid ClaimStatus value.
	ErrInvalidClaimStatus = errors.New("invalid claim request status")
)
