package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "alice",
		},
		{
			name:    "empty content",
			content: "",
		},
		{
			name:    "long content",
			content: "a much longer identifier that should still hash to a stable 64-bit value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent([]byte(tt.content))
			id2 := IDFromContent([]byte(tt.content))

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent([]byte("alice"))
	id2 := IDFromContent([]byte("bob"))

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestReportSearchText(t *testing.T) {
	tests := []struct {
		name   string
		report Report
		want   string
	}{
		{
			name: "lowercases and joins fields",
			report: Report{
				Name:        "Black Wallet",
				Description: "Leather bifold",
				Location:    "Main Library",
			},
			want: "black wallet leather bifold main library",
		},
		{
			name: "collapses whitespace",
			report: Report{
				Name:        "  Keys ",
				Description: "three\tkeys\non a ring",
				Location:    "lot  B",
			},
			want: "keys three keys on a ring lot b",
		},
		{
			name:   "all fields empty",
			report: Report{},
			want:   "",
		},
		{
			name: "empty description",
			report: Report{
				Name:     "Umbrella",
				Location: "bus stop",
			},
			want: "umbrella bus stop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.report.SearchText(); got != tt.want {
				t.Errorf("SearchText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClaimRequestActive(t *testing.T) {
	tests := []struct {
		name   string
		status ClaimStatus
		want   bool
	}{
		{name: "pending is active", status: ClaimPending, want: true},
		{name: "approved is active", status: ClaimApproved, want: true},
		{name: "rejected is not active", status: ClaimRejected, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := &ClaimRequest{Status: tt.status}
			if got := claim.Active(); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusStrings(t *testing.T) {
	if got := KindFound.String(); got != "found" {
		t.Errorf("KindFound.String() = %q", got)
	}
	if got := FoundClaimed.String(); got != "claimed" {
		t.Errorf("FoundClaimed.String() = %q", got)
	}
	if got := ClaimRejected.String(); got != "rejected" {
		t.Errorf("ClaimRejected.String() = %q", got)
	}
	if got := FoundStatus(0).String(); got != "unknown" {
		t.Errorf("FoundStatus(0).String() = %q", got)
	}
}
