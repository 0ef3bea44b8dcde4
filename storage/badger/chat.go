package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/refindhq/refind/core"
	"github.com/refindhq/refind/storage"
)

// ChatRepository implements storage.ChatRepository for BadgerDB.
type ChatRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ChatRepository = (*ChatRepository)(nil)

// NewChatRepository creates a new ChatRepository.
func NewChatRepository(backend *Backend) (*ChatRepository, error) {
	idSeq, err := backend.GetSequence(chatMessageIDSeq)
	if err != nil {
		return nil, err
	}

	return &ChatRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ChatRepository) Close() error {
	return r.idSeq.Release()
}

// AppendMessage appends a message to its claim's thread.
func (r *ChatRepository) AppendMessage(ctx context.Context, msg *core.ChatMessage) (*core.ChatMessage, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Always generate new ID from sequence
		next, err := nextID(r.idSeq)
		if err != nil {
			return err
		}
		msg.Id = core.ID(next)

		if msg.Timestamp.IsZero() {
			msg.Timestamp = time.Now().UTC()
		}

		// Store primary record
		key := makeChatMessageKey(msg.Id)
		value := storage.MarshalChatMessage(msg)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Update thread index
		threadKey := makeChatClaimKey(msg.ClaimId, msg.Timestamp, msg.Id)
		if err := tx.Set(threadKey, storage.MarshalID(msg.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return msg, err
}

// GetMessages retrieves a claim's messages ordered by timestamp ascending.
// The thread index keys embed the timestamp, so iteration order is the
// thread order.
func (r *ChatRepository) GetMessages(ctx context.Context, claimID core.ID) ([]*core.ChatMessage, error) {
	var results []*core.ChatMessage
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialChatClaimKey(claimID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Check if key still has our claim prefix
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			// Read the ID from the index
			var messageID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				messageID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full message
			msg, err := readChatMessage(tx, makeChatMessageKey(messageID))
			if err != nil {
				return err
			}
			if msg != nil {
				results = append(results, msg)
			}
		}
		return nil
	}, false)

	return results, err
}

// readChatMessage reads a chat message from the transaction.
func readChatMessage(tx *badger.Txn, key []byte) (*core.ChatMessage, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var msg *core.ChatMessage
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		msg, unmarshalErr = storage.UnmarshalChatMessage(val)
		return unmarshalErr
	})
	return msg, err
}
