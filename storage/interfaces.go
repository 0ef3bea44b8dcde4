package storage

import (
	"context"

	"github.com/refindhq/refind/core"
)

// Repository provides common operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close closes the repository and releases resources.
	Close() error
}

// FoundRepository provides operations for managing found-item records.
type FoundRepository interface {
	Repository

	// AddFoundRecords adds one or more found records to storage.
	// Generates new IDs from sequence and sets InsertedAt/UpdatedAt.
	// Returns the records with generated IDs and timestamps populated.
	AddFoundRecords(ctx context.Context, records ...*core.FoundRecord) ([]*core.FoundRecord, error)

	// UpdateFoundRecords updates existing found records.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateFoundRecords(ctx context.Context, records ...*core.FoundRecord) ([]*core.FoundRecord, error)

	// GetFoundRecord retrieves a single found record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetFoundRecord(ctx context.Context, id core.ID) (*core.FoundRecord, error)

	// GetFoundRecords retrieves multiple found records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetFoundRecords(ctx context.Context, ids ...core.ID) ([]*core.FoundRecord, error)

	// ListFoundRecords retrieves found records filtered by status,
	// ordered by ID ascending. Status 0 means all records.
	ListFoundRecords(ctx context.Context, status core.FoundStatus) ([]*core.FoundRecord, error)
}

// LostRepository provides operations for managing lost-item records.
type LostRepository interface {
	Repository

	// AddLostRecords adds one or more lost records to storage.
	// Generates new IDs from sequence and sets InsertedAt/UpdatedAt.
	AddLostRecords(ctx context.Context, records ...*core.LostRecord) ([]*core.LostRecord, error)

	// UpdateLostRecords updates existing lost records.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateLostRecords(ctx context.Context, records ...*core.LostRecord) ([]*core.LostRecord, error)

	// GetLostRecord retrieves a single lost record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetLostRecord(ctx context.Context, id core.ID) (*core.LostRecord, error)

	// ListLostRecords retrieves all lost records, ordered by ID ascending.
	ListLostRecords(ctx context.Context) ([]*core.LostRecord, error)

	// ListLostRecordsByOwner retrieves the lost records reported by one owner,
	// ordered by ID ascending.
	ListLostRecordsByOwner(ctx context.Context, owner core.ID) ([]*core.LostRecord, error)
}

// ClaimRepository provides operations for managing claim requests.
// Claim requests are never deleted; they form the audit trail.
type ClaimRepository interface {
	Repository

	// AddClaimRequest adds a claim request to storage, generates its ID, sets
	// CreatedAt, and points the (FoundId, ClaimantId) pair index at it.
	AddClaimRequest(ctx context.Context, claim *core.ClaimRequest) (*core.ClaimRequest, error)

	// UpdateClaimRequest updates an existing claim request.
	// Returns ErrNotFound if the claim doesn't exist.
	UpdateClaimRequest(ctx context.Context, claim *core.ClaimRequest) (*core.ClaimRequest, error)

	// UpdateClaimWithFound persists a claim request and its found record in a
	// single transaction so an approval is never partially applied.
	UpdateClaimWithFound(ctx context.Context, claim *core.ClaimRequest, found *core.FoundRecord) error

	// GetClaimRequest retrieves a single claim request by ID.
	// Returns ErrNotFound if the claim doesn't exist.
	GetClaimRequest(ctx context.Context, id core.ID) (*core.ClaimRequest, error)

	// GetLatestClaim retrieves the most recent claim request for a
	// (found record, claimant) pair via the pair index.
	// Returns ErrNotFound if the pair never claimed.
	GetLatestClaim(ctx context.Context, foundID, claimantID core.ID) (*core.ClaimRequest, error)

	// ListClaimsByFoundRecord retrieves all claim requests attached to a found
	// record, ordered by creation time ascending.
	ListClaimsByFoundRecord(ctx context.Context, foundID core.ID) ([]*core.ClaimRequest, error)
}

// ChatRepository provides operations for the message threads attached to
// claim requests. Threads are append-only.
type ChatRepository interface {
	Repository

	// AppendMessage appends a message to its claim's thread, generating the
	// message ID and stamping the timestamp if unset.
	AppendMessage(ctx context.Context, msg *core.ChatMessage) (*core.ChatMessage, error)

	// GetMessages retrieves a claim's messages ordered by timestamp ascending.
	GetMessages(ctx context.Context, claimID core.ID) ([]*core.ChatMessage, error)
}
