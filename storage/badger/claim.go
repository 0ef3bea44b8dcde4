package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/refindhq/refind/core"
	"github.com/refindhq/refind/storage"
)

// ClaimRepository implements storage.ClaimRepository for BadgerDB.
type ClaimRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ClaimRepository = (*ClaimRepository)(nil)

// NewClaimRepository creates a new ClaimRepository.
func NewClaimRepository(backend *Backend) (*ClaimRepository, error) {
	idSeq, err := backend.GetSequence(claimRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &ClaimRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ClaimRepository) Close() error {
	return r.idSeq.Release()
}

// AddClaimRequest adds a claim request to storage.
func (r *ClaimRepository) AddClaimRequest(ctx context.Context, claim *core.ClaimRequest) (*core.ClaimRequest, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Always generate new ID from sequence
		next, err := nextID(r.idSeq)
		if err != nil {
			return err
		}
		claim.Id = core.ID(next)

		claim.CreatedAt = time.Now().UTC()
		if claim.Status == 0 {
			claim.Status = core.ClaimPending
		}

		// Store primary record
		key := makeClaimRecordKey(claim.Id)
		value := storage.MarshalClaimRequest(claim)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Point the pair index at this claim; the index always tracks the
		// most recent claim for a (found record, claimant) pair.
		pairKey := makeClaimPairKey(claim.FoundId, claim.ClaimantId)
		if err := tx.Set(pairKey, storage.MarshalID(claim.Id)); err != nil {
			return err
		}

		// Update found-record index
		foundKey := makeClaimFoundKey(claim.FoundId, claim.CreatedAt, claim.Id)
		if err := tx.Set(foundKey, storage.MarshalID(claim.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return claim, err
}

// UpdateClaimRequest updates an existing claim request.
func (r *ClaimRepository) UpdateClaimRequest(ctx context.Context, claim *core.ClaimRequest) (*core.ClaimRequest, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := r.writeClaim(tx, claim); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	return claim, err
}

// UpdateClaimWithFound persists a claim request and its found record in a
// single transaction so an approval is never partially applied.
func (r *ClaimRepository) UpdateClaimWithFound(ctx context.Context, claim *core.ClaimRequest, found *core.FoundRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := r.writeClaim(tx, claim); err != nil {
			return err
		}

		foundKey := makeFoundRecordKey(found.Id)
		old, err := readFoundRecord(tx, foundKey)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}
		found.UpdatedAt = time.Now().UTC()
		if err := tx.Set(foundKey, storage.MarshalFoundRecord(found)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// GetClaimRequest retrieves a single claim request by ID.
func (r *ClaimRepository) GetClaimRequest(ctx context.Context, id core.ID) (*core.ClaimRequest, error) {
	var result *core.ClaimRequest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeClaimRecordKey(id)
		var err error
		result, err = readClaimRequest(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetLatestClaim retrieves the most recent claim request for a
// (found record, claimant) pair via the pair index.
func (r *ClaimRepository) GetLatestClaim(ctx context.Context, foundID, claimantID core.ID) (*core.ClaimRequest, error) {
	var result *core.ClaimRequest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeClaimPairKey(foundID, claimantID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var claimID core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			claimID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = readClaimRequest(tx, makeClaimRecordKey(claimID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListClaimsByFoundRecord retrieves all claim requests attached to a found
// record, ordered by creation time ascending.
func (r *ClaimRepository) ListClaimsByFoundRecord(ctx context.Context, foundID core.ID) ([]*core.ClaimRequest, error) {
	var results []*core.ClaimRequest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialClaimFoundKey(foundID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			// Read the ID from the index
			var claimID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				claimID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full claim
			claim, err := readClaimRequest(tx, makeClaimRecordKey(claimID))
			if err != nil {
				return err
			}
			if claim != nil {
				results = append(results, claim)
			}
		}
		return nil
	}, false)

	return results, err
}

// writeClaim stores a claim after checking it exists. Indexes are keyed on
// immutable fields, so updates never touch them.
func (r *ClaimRepository) writeClaim(tx *badger.Txn, claim *core.ClaimRequest) error {
	key := makeClaimRecordKey(claim.Id)

	old, err := readClaimRequest(tx, key)
	if err != nil {
		return err
	}
	if old == nil {
		return storage.ErrNotFound
	}

	return tx.Set(key, storage.MarshalClaimRequest(claim))
}

// readClaimRequest reads a claim request from the transaction.
func readClaimRequest(tx *badger.Txn, key []byte) (*core.ClaimRequest, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var claim *core.ClaimRequest
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		claim, unmarshalErr = storage.UnmarshalClaimRequest(val)
		return unmarshalErr
	})
	return claim, err
}
