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

import (
	"fmt"
	"time"
)

// ValidateFoundRecord validates a FoundRecord according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Status must be a valid FoundStatus
//   - Date must not be in the future
//
// NOT validated (populated later):
//   - Vector (empty until the embedding backfill runs)
//   - Description (may be empty; the AI describer can supply it)
//   - ID (0 is valid from database sequences)
func ValidateFoundRecord(record *FoundRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidFoundRecord)
	}

	if record.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFoundRecord, ErrEmptyName)
	}

	if err := ValidateFoundStatus(record.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFoundRecord, err)
	}

	if !IsValidDate(record.Date) {
		return fmt.Errorf("%w: %w", ErrInvalidFoundRecord, ErrInvalidDate)
	}

	return nil
}

// ValidateLostRecord validates a LostRecord according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - ReporterId (the owner) must be set
//   - Date must not be in the future
func ValidateLostRecord(record *LostRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidLostRecord)
	}

	if record.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLostRecord, ErrEmptyName)
	}

	if record.ReporterId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidLostRecord, ErrMissingReporter)
	}

	if !IsValidDate(record.Date) {
		return fmt.Errorf("%w: %w", ErrInvalidLostRecord, ErrInvalidDate)
	}

	return nil
}

// ValidateClaimRequest validates a ClaimRequest according to domain rules.
//
// Validation rules:
//   - FoundId and ClaimantId must be set
//   - ProofDescription must not be empty
//   - Status must be a valid ClaimStatus
func ValidateClaimRequest(claim *ClaimRequest) error {
	if claim == nil {
		return fmt.Errorf("%w: claim is nil", ErrInvalidClaimRequest)
	}

	if claim.FoundId == 0 || claim.ClaimantId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidClaimRequest, ErrMissingParty)
	}

	if claim.ProofDescription == "" {
		return fmt.Errorf("%w: %w", ErrInvalidClaimRequest, ErrEmptyProof)
	}

	if err := ValidateClaimStatus(claim.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidClaimRequest, err)
	}

	return nil
}

// ValidateChatMessage validates a ChatMessage according to domain rules.
func ValidateChatMessage(msg *ChatMessage) error {
	if msg == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidChatMessage)
	}

	if msg.ClaimId == 0 || msg.SenderId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChatMessage, ErrMissingParty)
	}

	if msg.Body == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChatMessage, ErrEmptyBody)
	}

	return nil
}

// ValidateFoundStatus validates that a FoundStatus has a valid value.
func ValidateFoundStatus(status FoundStatus) error {
	switch status {
	case FoundPending, FoundClaimed, FoundReturned, FoundDisposed:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidFoundStatus, status)
}

// ValidateClaimStatus validates that a ClaimStatus has a valid value.
func ValidateClaimStatus(status ClaimStatus) error {
	switch status {
	case ClaimPending, ClaimApproved, ClaimRejected:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidClaimStatus, status)
}

// IsValidDate checks if a report date is valid (not in the future).
func IsValidDate(ts time.Time) bool {
	return !ts.After(time.Now())
}
