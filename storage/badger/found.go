package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/refindhq/refind/core"
	"github.com/refindhq/refind/storage"
)

// FoundRepository implements storage.FoundRepository for BadgerDB.
type FoundRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.FoundRepository = (*FoundRepository)(nil)

// NewFoundRepository creates a new FoundRepository.
func NewFoundRepository(backend *Backend) (*FoundRepository, error) {
	idSeq, err := backend.GetSequence(foundRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &FoundRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *FoundRepository) Close() error {
	return r.idSeq.Release()
}

// AddFoundRecords adds one or more found records to storage.
func (r *FoundRepository) AddFoundRecords(ctx context.Context, records ...*core.FoundRecord) ([]*core.FoundRecord, error) {
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

			if record.Status == 0 {
				record.Status = core.FoundPending
			}

			key := makeFoundRecordKey(record.Id)
			value := storage.MarshalFoundRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// UpdateFoundRecords updates existing found records.
func (r *FoundRepository) UpdateFoundRecords(ctx context.Context, records ...*core.FoundRecord) ([]*core.FoundRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeFoundRecordKey(record.Id)

			old, err := readFoundRecord(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			record.UpdatedAt = time.Now().UTC()

			value := storage.MarshalFoundRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// GetFoundRecord retrieves a single found record by ID.
func (r *FoundRepository) GetFoundRecord(ctx context.Context, id core.ID) (*core.FoundRecord, error) {
	var result *core.FoundRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeFoundRecordKey(id)
		var err error
		result, err = readFoundRecord(tx, key)
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

// GetFoundRecords retrieves multiple found records by their IDs.
func (r *FoundRepository) GetFoundRecords(ctx context.Context, ids ...core.ID) ([]*core.FoundRecord, error) {
	var result []*core.FoundRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeFoundRecordKey(id)
			record, err := readFoundRecord(tx, key)
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListFoundRecords retrieves found records filtered by status, ordered by ID
// ascending. Status 0 means all records.
func (r *FoundRepository) ListFoundRecords(ctx context.Context, status core.FoundStatus) ([]*core.FoundRecord, error) {
	var results []*core.FoundRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(foundRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.FoundRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalFoundRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record == nil {
				continue
			}
			if status != 0 && record.Status != status {
				continue
			}
			results = append(results, record)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Record keys are decimal strings, so the iterator yields records in
	// lexicographic key order rather than numeric ID order.
	slices.SortFunc(results, func(a, b *core.FoundRecord) int {
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})

	return results, nil
}

// readFoundRecord reads a found record from the transaction.
func readFoundRecord(tx *badger.Txn, key []byte) (*core.FoundRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.FoundRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalFoundRecord(val)
		return unmarshalErr
	})
	return record, err
}
