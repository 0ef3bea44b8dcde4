package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs. It is used to
// derive stable references from external keys such as usernames and intake
// session tokens.
func IDFromContent(content []byte) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(content)
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ReportKind distinguishes found-item reports from lost-item reports.
type ReportKind int

const (
	// KindFound marks a report of an item somebody found.
	KindFound ReportKind = iota + 1
	// KindLost marks a report of an item somebody lost.
	KindLost
)

func (k ReportKind) String() string {
	switch k {
	case KindFound:
		return "found"
	case KindLost:
		return "lost"
	default:
		return "unknown"
	}
}

// FoundStatus is the lifecycle state of a FoundRecord.
type FoundStatus int

const (
	// FoundPending means the item is awaiting a claim.
	FoundPending FoundStatus = iota + 1
	// FoundClaimed means an approved claimant holds the item.
	FoundClaimed
	// FoundReturned means the item was handed back to its owner.
	FoundReturned
	// FoundDisposed means the item was disposed of administratively.
	FoundDisposed
)

func (s FoundStatus) String() string {
	switch s {
	case FoundPending:
		return "pending"
	case FoundClaimed:
		return "claimed"
	case FoundReturned:
		return "returned"
	case FoundDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// ClaimStatus is the lifecycle state of a ClaimRequest.
type ClaimStatus int

const (
	// ClaimPending means the claim awaits the finder's decision.
	ClaimPending ClaimStatus = iota + 1
	// ClaimApproved means the finder accepted the claim.
	ClaimApproved
	// ClaimRejected means the finder turned the claim down.
	ClaimRejected
)

func (s ClaimStatus) String() string {
	switch s {
	case ClaimPending:
		return "pending"
	case ClaimApproved:
		return "approved"
	case ClaimRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ClaimDecision is the finder's verdict on a pending ClaimRequest.
type ClaimDecision int

const (
	// DecisionApprove accepts the claim and hands the item over.
	DecisionApprove ClaimDecision = iota + 1
	// DecisionReject declines the claim, leaving the item available.
	DecisionReject
)

// Report holds the fields shared by found and lost item reports.
// Description is mutated only to prepend AI-derived text before the record
// is first persisted; afterwards records change through status transitions.
type Report struct {
	Id          ID
	Name        string
	Description string
	Location    string
	Date        time.Time // Calendar date the item was found or lost
	Contact     string
	ReporterId  ID
	ImageRef    string    // Opaque reference to the report photo, empty when none
	Vector      []float32 // Embedding of SearchText, populated asynchronously
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// SearchText returns the lower-cased, whitespace-normalized text the matching
// engine scores against: name, description, and location joined by spaces.
func (r *Report) SearchText() string {
	joined := r.Name + " " + r.Description + " " + r.Location
	return strings.Join(strings.Fields(strings.ToLower(joined)), " ")
}

// FoundRecord is a report of an item that was found.
type FoundRecord struct {
	Report
	Status    FoundStatus
	ClaimedBy ID // Set only on the transition to FoundClaimed
}

// LostRecord is a report of an item that was lost. ReporterId is the owner.
type LostRecord struct {
	Report
	IsMatched bool
}

// ClaimRequest bridges a FoundRecord and a claimant asserting ownership.
// Requests are never deleted; they form the audit trail of the handoff.
type ClaimRequest struct {
	Id               ID
	FoundId          ID
	ClaimantId       ID
	ProofDescription string
	Status           ClaimStatus
	CreatedAt        time.Time
	DecidedAt        time.Time // Zero until the finder decides
}

// Active reports whether the claim still occupies its (FoundId, ClaimantId)
// slot, i.e. it is pending or approved.
func (c *ClaimRequest) Active() bool {
	return c.Status == ClaimPending || c.Status == ClaimApproved
}

// ChatMessage is a single message in the conversation attached to a claim.
// Messages are append-only and ordered by timestamp.
type ChatMessage struct {
	Id        ID
	ClaimId   ID
	SenderId  ID
	Body      string
	Timestamp time.Time
}

// ScoredResult is the outcome of scoring one (query, candidate) pair.
type ScoredResult struct {
	Value     float64
	Breakdown Breakdown
}

// Breakdown exposes the sub-scores behind a ScoredResult for observability
// and testing. Absent signals are reported as zero with their flag unset.
type Breakdown struct {
	Lexical           float64
	Semantic          float64
	HasSemantic       bool
	NameBonus         float64
	Visual            float64
	HasVisual         bool
	CategoryPenalty   float64
	QueryCategory     string
	CandidateCategory string
}
