package claims

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/refindhq/refind/core"
	"github.com/refindhq/refind/storage"
)

// Controller is the state machine governing found records and the claim
// requests attached to them. It enforces the single-active-claim and
// finder-only-decision invariants, and the two-party rule on claim chat
// threads.
type Controller struct {
	foundRepository storage.FoundRepository
	claimRepository storage.ClaimRepository
	chatRepository  storage.ChatRepository
	locks           *lockTable
	logger          *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewController creates a new claim lifecycle controller.
func NewController(
	foundRepository storage.FoundRepository,
	claimRepository storage.ClaimRepository,
	chatRepository storage.ChatRepository,
	opts ...Option,
) (*Controller, error) {
	if foundRepository == nil {
		return nil, ErrFoundRepositoryRequired
	}
	if claimRepository == nil {
		return nil, ErrClaimRepositoryRequired
	}
	if chatRepository == nil {
		return nil, ErrChatRepositoryRequired
	}

	c := &Controller{
		foundRepository: foundRepository,
		claimRepository: claimRepository,
		chatRepository:  chatRepository,
		locks:           newLockTable(),
		logger:          slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// InitiateClaim opens a claim on a found record, or resumes the claimant's
// existing active claim on it. Preconditions, checked in order: the found
// record exists and is PENDING; the claimant is not the record's reporter;
// no PENDING or APPROVED claim already exists for this (record, claimant)
// pair (if one does, it is returned as-is rather than duplicated); the
// proof description is non-empty.
func (c *Controller) InitiateClaim(ctx context.Context, foundID, claimantID core.ID, proofDescription string) (*core.ClaimRequest, error) {
	unlock := c.locks.lock(foundID)
	defer unlock()

	found, err := c.foundRepository.GetFoundRecord(ctx, foundID)
	if err != nil {
		return nil, err
	}
	if found.Status != core.FoundPending {
		return nil, ErrNotClaimable
	}
	if found.ReporterId == claimantID {
		return nil, ErrSelfClaim
	}

	// Resume an existing active claim instead of opening a duplicate. This
	// check comes before proof validation so a resume never demands new proof.
	existing, err := c.claimRepository.GetLatestClaim(ctx, foundID, claimantID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.Active() {
		c.logger.Debug("resuming active claim", "claimID", existing.Id, "foundID", foundID)
		return existing, nil
	}

	if strings.TrimSpace(proofDescription) == "" {
		return nil, core.ErrEmptyProof
	}

	claim := &core.ClaimRequest{
		FoundId:          foundID,
		ClaimantId:       claimantID,
		ProofDescription: proofDescription,
		Status:           core.ClaimPending,
	}
	if err := core.ValidateClaimRequest(claim); err != nil {
		return nil, err
	}

	claim, err = c.claimRepository.AddClaimRequest(ctx, claim)
	if err != nil {
		return nil, err
	}

	c.logger.Info("claim initiated", "claimID", claim.Id, "foundID", foundID, "claimantID", claimantID)
	return claim, nil
}

// DecideClaim approves or rejects a pending claim. Only the found record's
// reporter may decide. Approval moves the claim to APPROVED and the found
// record to CLAIMED in one atomic write; rejection moves the claim to
// REJECTED and leaves the found record PENDING, so other claimants are
// unaffected.
func (c *Controller) DecideClaim(ctx context.Context, claimID, deciderID core.ID, decision core.ClaimDecision) (*core.ClaimRequest, error) {
	if decision != core.DecisionApprove && decision != core.DecisionReject {
		return nil, ErrInvalidDecision
	}

	claim, err := c.claimRepository.GetClaimRequest(ctx, claimID)
	if err != nil {
		return nil, err
	}

	unlock := c.locks.lock(claim.FoundId)
	defer unlock()

	// Re-read under the lock; a concurrent decision may have landed between
	// the first read and lock acquisition.
	claim, err = c.claimRepository.GetClaimRequest(ctx, claimID)
	if err != nil {
		return nil, err
	}

	found, err := c.foundRepository.GetFoundRecord(ctx, claim.FoundId)
	if err != nil {
		return nil, err
	}
	if found.ReporterId != deciderID {
		return nil, ErrUnauthorized
	}
	if claim.Status != core.ClaimPending {
		return nil, ErrAlreadyDecided
	}

	claim.DecidedAt = time.Now().UTC()

	switch decision {
	case core.DecisionApprove:
		claim.Status = core.ClaimApproved
		found.Status = core.FoundClaimed
		found.ClaimedBy = claim.ClaimantId
		if err := c.claimRepository.UpdateClaimWithFound(ctx, claim, found); err != nil {
			return nil, err
		}
		c.logger.Info("claim approved", "claimID", claim.Id, "foundID", found.Id, "claimantID", claim.ClaimantId)

	case core.DecisionReject:
		claim.Status = core.ClaimRejected
		if _, err := c.claimRepository.UpdateClaimRequest(ctx, claim); err != nil {
			return nil, err
		}
		c.logger.Info("claim rejected", "claimID", claim.Id, "foundID", found.Id)
	}

	return claim, nil
}

// ListClaims returns a found record's claims in creation order. Only the
// record's reporter may list them.
func (c *Controller) ListClaims(ctx context.Context, foundID, requesterID core.ID) ([]*core.ClaimRequest, error) {
	found, err := c.foundRepository.GetFoundRecord(ctx, foundID)
	if err != nil {
		return nil, err
	}
	if found.ReporterId != requesterID {
		return nil, ErrUnauthorized
	}
	return c.claimRepository.ListClaimsByFoundRecord(ctx, foundID)
}

// PostMessage appends a message to a claim's chat thread.
// Only the claimant and the found record's reporter may post.
func (c *Controller) PostMessage(ctx context.Context, claimID, senderID core.ID, body string) (*core.ChatMessage, error) {
	if err := c.authorizeParticipant(ctx, claimID, senderID); err != nil {
		return nil, err
	}

	msg := &core.ChatMessage{
		ClaimId:  claimID,
		SenderId: senderID,
		Body:     strings.TrimSpace(body),
	}
	if err := core.ValidateChatMessage(msg); err != nil {
		return nil, err
	}

	return c.chatRepository.AppendMessage(ctx, msg)
}

// Messages returns a claim's chat thread ordered by timestamp ascending.
// Only the claimant and the found record's reporter may read it.
func (c *Controller) Messages(ctx context.Context, claimID, requesterID core.ID) ([]*core.ChatMessage, error) {
	if err := c.authorizeParticipant(ctx, claimID, requesterID); err != nil {
		return nil, err
	}
	return c.chatRepository.GetMessages(ctx, claimID)
}

// authorizeParticipant verifies that an actor is one of the two claim parties.
func (c *Controller) authorizeParticipant(ctx context.Context, claimID, actorID core.ID) error {
	claim, err := c.claimRepository.GetClaimRequest(ctx, claimID)
	if err != nil {
		return err
	}
	if actorID == claim.ClaimantId {
		return nil
	}

	found, err := c.foundRepository.GetFoundRecord(ctx, claim.FoundId)
	if err != nil {
		return err
	}
	if actorID == found.ReporterId {
		return nil
	}

	return ErrNotParticipant
}
