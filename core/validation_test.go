package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateFoundRecord(t *testing.T) {
	validDate := time.Now().Add(-1 * time.Hour)
	futureDate := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		record  *FoundRecord
		wantErr error
	}{
		{
			name: "valid record",
			record: &FoundRecord{
				Report: Report{
					Name:       "Black Wallet",
					Location:   "library",
					Date:       validDate,
					ReporterId: 1,
				},
				Status: FoundPending,
			},
			wantErr: nil,
		},
		{
			name: "valid record with empty vector and description",
			record: &FoundRecord{
				Report: Report{
					Name: "Keys",
					Date: validDate,
				},
				Status: FoundClaimed,
			},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidFoundRecord,
		},
		{
			name: "empty name",
			record: &FoundRecord{
				Report: Report{Date: validDate},
				Status: FoundPending,
			},
			wantErr: ErrEmptyName,
		},
		{
			name: "invalid status",
			record: &FoundRecord{
				Report: Report{Name: "Umbrella", Date: validDate},
				Status: FoundStatus(99),
			},
			wantErr: ErrInvalidFoundStatus,
		},
		{
			name: "future date",
			record: &FoundRecord{
				Report: Report{Name: "Umbrella", Date: futureDate},
				Status: FoundPending,
			},
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFoundRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateFoundRecord() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFoundRecord() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidFoundRecord) {
				t.Errorf("ValidateFoundRecord() error = %v, should wrap %v", err, ErrInvalidFoundRecord)
			}
		})
	}
}

func TestValidateLostRecord(t *testing.T) {
	validDate := time.Now().Add(-1 * time.Hour)

	tests := []struct {
		name    string
		record  *LostRecord
		wantErr error
	}{
		{
			name: "valid record",
			record: &LostRecord{
				Report: Report{
					Name:       "Phone",
					Date:       validDate,
					ReporterId: 7,
				},
			},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidLostRecord,
		},
		{
			name: "empty name",
			record: &LostRecord{
				Report: Report{Date: validDate, ReporterId: 7},
			},
			wantErr: ErrEmptyName,
		},
		{
			name: "missing reporter",
			record: &LostRecord{
				Report: Report{Name: "Phone", Date: validDate},
			},
			wantErr: ErrMissingReporter,
		},
		{
			name: "future date",
			record: &LostRecord{
				Report: Report{Name: "Phone", Date: time.Now().Add(time.Hour), ReporterId: 7},
			},
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLostRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateLostRecord() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateLostRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateClaimRequest(t *testing.T) {
	tests := []struct {
		name    string
		claim   *ClaimRequest
		wantErr error
	}{
		{
			name: "valid claim",
			claim: &ClaimRequest{
				FoundId:          1,
				ClaimantId:       2,
				ProofDescription: "it has my initials engraved on the back",
				Status:           ClaimPending,
			},
			wantErr: nil,
		},
		{
			name:    "nil claim",
			claim:   nil,
			wantErr: ErrInvalidClaimRequest,
		},
		{
			name: "missing found reference",
			claim: &ClaimRequest{
				ClaimantId:       2,
				ProofDescription: "proof",
				Status:           ClaimPending,
			},
			wantErr: ErrMissingParty,
		},
		{
			name: "missing claimant",
			claim: &ClaimRequest{
				FoundId:          1,
				ProofDescription: "proof",
				Status:           ClaimPending,
			},
			wantErr: ErrMissingParty,
		},
		{
			name: "empty proof",
			claim: &ClaimRequest{
				FoundId:    1,
				ClaimantId: 2,
				Status:     ClaimPending,
			},
			wantErr: ErrEmptyProof,
		},
		{
			name: "invalid status",
			claim: &ClaimRequest{
				FoundId:          1,
				ClaimantId:       2,
				ProofDescription: "proof",
				Status:           ClaimStatus(42),
			},
			wantErr: ErrInvalidClaimStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClaimRequest(tt.claim)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateClaimRequest() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateClaimRequest() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChatMessage(t *testing.T) {
	tests := []struct {
		name    string
		msg     *ChatMessage
		wantErr error
	}{
		{
			name: "valid message",
			msg: &ChatMessage{
				ClaimId:  1,
				SenderId: 2,
				Body:     "when can I pick it up?",
			},
			wantErr: nil,
		},
		{
			name:    "nil message",
			msg:     nil,
			wantErr: ErrInvalidChatMessage,
		},
		{
			name: "missing claim reference",
			msg: &ChatMessage{
				SenderId: 2,
				Body:     "hello",
			},
			wantErr: ErrMissingParty,
		},
		{
			name: "empty body",
			msg: &ChatMessage{
				ClaimId:  1,
				SenderId: 2,
			},
			wantErr: ErrEmptyBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChatMessage(tt.msg)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChatMessage() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChatMessage() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
