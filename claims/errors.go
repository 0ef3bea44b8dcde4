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


package claims

import "errors"

var (
	// ErrFoundRepositoryRequired is returned when a found repository is not provided.
	ErrFoundRepositoryRequired = errors.New("found repository required")

	// ErrClaimRepositoryRequired is returned when a claim repository is not provided.
	ErrClaimRepositoryRequired = errors.New("claim repository required")

	// ErrChatRepositoryRequired is returned when a chat repository is not provided.
	ErrChatRepositoryRequired = errors.New("chat repository required")

	// ErrSelfClaim is returned when a reporter tries to claim their own found item.
	ErrSelfClaim = errors.New("reporter cannot claim their own found item")

	// ErrNotClaimable is returned when the found record is not PENDING.
	ErrNotClaimable = errors.New("found record is not open for claims")

	// ErrUnauthorized is returned when someone other than the finder decides a claim.
	ErrUnauthorized = errors.New("only the finder may decide a claim")

	// ErrAlreadyDecided is returned when deciding a claim that is no longer PENDING.
	ErrAlreadyDecided = errors.New("claim request already decided")

	// ErrInvalidDecision is returned for a decision other than approve or reject.
	ErrInvalidDecision = errors.New("invalid claim decision")

	// ErrNotParticipant is returned when someone outside the claim's two
	// parties touches its chat thread.
	ErrNotParticipant = errors.New("not a participant in this claim")
)
