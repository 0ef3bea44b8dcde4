package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/refindhq/refind/core"
	"github.com/refindhq/refind/storage"
)

// LostRepository implements storage.LostRepository for BadgerDB.
type LostRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.LostRepository = (*LostRepository)(nil)

// NewLostRepository creates a new LostRepository.
func NewLostRepository(backend *Backend) (*LostRepository, error) {
	idSeq, err := backend.GetSequence(lostRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &LostRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *LostRepository) Close() error {
	return r.idSeq.Release()
}

// AddLostRecords adds one or more lost records to storage.
func (r *LostRepository) AddLostRecords(ctx context.Context, records ...*core.LostRecord) ([]*core.LostRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			// Always generate new ID from sequence
			next, err := nextID(r.idSeq)
			if err != nil {
				return err
			}
			record.Id = core.ID(next)

			record.InsertedAt = time.Now().UTC()
			record.UpdatedAt = record.InsertedAt

			// Store primary record
			key := makeLostRecordKey(record.Id)
			value := storage.MarshalLostRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update owner index
			ownerKey := makeLostOwnerKey(record.ReporterId, record.Id)
			if err := tx.Set(ownerKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// UpdateLostRecords updates existing lost records.
func (r *LostRepository) UpdateLostRecords(ctx context.Context, records ...*core.LostRecord) ([]*core.LostRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeLostRecordKey(record.Id)

			old, err := readLostRecord(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			record.UpdatedAt = time.Now().UTC()

			value := storage.MarshalLostRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update owner index if the reporter changed
			if old.ReporterId != record.ReporterId {
				oldOwnerKey := makeLostOwnerKey(old.ReporterId, old.Id)
				if err := tx.Delete(oldOwnerKey); err != nil {
					return err
				}
				newOwnerKey := makeLostOwnerKey(record.ReporterId, record.Id)
				if err := tx.Set(newOwnerKey, storage.MarshalID(record.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// GetLostRecord retrieves a single lost record by ID.
func (r *LostRepository) GetLostRecord(ctx context.Context, id core.ID) (*core.LostRecord, error) {
	var result *core.LostRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeLostRecordKey(id)
		var err error
		result, err = readLostRecord(tx, key)
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

// ListLostRecords retrieves all lost records, ordered by ID ascending.
func (r *LostRepository) ListLostRecords(ctx context.Context) ([]*core.LostRecord, error) {
	var results []*core.LostRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(lostRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.LostRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalLostRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sortLostRecords(results)
	return results, nil
}

// ListLostRecordsByOwner retrieves the lost records reported by one owner,
// ordered by ID ascending.
func (r *LostRepository) ListLostRecordsByOwner(ctx context.Context, owner core.ID) ([]*core.LostRecord, error) {
	var results []*core.LostRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialLostOwnerKey(owner)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Check if key still has our owner prefix
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			// Read the ID from the index
			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			recordKey := makeLostRecordKey(recordID)
			record, err := readLostRecord(tx, recordKey)
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sortLostRecords(results)
	return results, nil
}

// sortLostRecords orders records by ID ascending.
func sortLostRecords(records []*core.LostRecord) {
	slices.SortFunc(records, func(a, b *core.LostRecord) int {
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})
}

// readLostRecord reads a lost record from the transaction.
func readLostRecord(tx *badger.Txn, key []byte) (*core.LostRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.LostRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalLostRecord(val)
		return unmarshalErr
	})
	return record, err
}
