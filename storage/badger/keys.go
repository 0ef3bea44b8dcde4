package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/refindhq/refind/core"
)

// Key prefixes for different data types
const (
	foundRecordPrefix = "fndrec"
	foundRecordIDSeq  = "fndrecseq"

	lostRecordPrefix      = "lstrec"
	lostRecordIDSeq       = "lstrecseq"
	lostRecordOwnerPrefix = "lstrecown"

	claimRecordPrefix     = "clmrec"
	claimRecordIDSeq      = "clmrecseq"
	claimPairPrefix       = "clmpair"
	claimFoundIndexPrefix = "clmrecfnd"

	chatMessagePrefix      = "chtmsg"
	chatMessageIDSeq       = "chtmsgseq"
	chatMessageClaimPrefix = "chtmsgclm"
)

// makeFoundRecordKey generates a key for a found record by ID.
func makeFoundRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", foundRecordPrefix, id))
}

// makeLostRecordKey generates a key for a lost record by ID.
func makeLostRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", lostRecordPrefix, id))
}

// makeClaimRecordKey generates a key for a claim request by ID.
func makeClaimRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", claimRecordPrefix, id))
}

// makeChatMessageKey generates a key for a chat message by ID.
func makeChatMessageKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chatMessagePrefix, id))
}

// appendUint64 writes v in BigEndian order so lexicographic sort of keys
// matches numeric sort of their components.
func appendUint64(buf []byte, offset int, v uint64) int {
	binary.BigEndian.PutUint64(buf[offset:], v)
	return offset + 8
}

// makeLostOwnerKey generates a composite key for the owner index.
// Format: prefix:ownerID:recordID
func makeLostOwnerKey(owner, recordID core.ID) []byte {
	prefix := []byte(lostRecordOwnerPrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	offset = appendUint64(buf, offset, uint64(owner))
	appendUint64(buf, offset, uint64(recordID))
	return buf
}

// makePartialLostOwnerKey generates a partial key for owner queries.
func makePartialLostOwnerKey(owner core.ID) []byte {
	prefix := []byte(lostRecordOwnerPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	appendUint64(buf, offset, uint64(owner))
	return buf
}

// makeClaimPairKey generates the key of the (found record, claimant) pair
// index. The index always points at the most recent claim for the pair.
// Format: prefix:foundID:claimantID
func makeClaimPairKey(foundID, claimantID core.ID) []byte {
	prefix := []byte(claimPairPrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	offset = appendUint64(buf, offset, uint64(foundID))
	appendUint64(buf, offset, uint64(claimantID))
	return buf
}

// makeClaimFoundKey generates a composite key for the found-record index.
// Format: prefix:foundID:createdAt:claimID, so iteration yields a found
// record's claims in creation order.
func makeClaimFoundKey(foundID core.ID, createdAt time.Time, claimID core.ID) []byte {
	prefix := []byte(claimFoundIndexPrefix + ":")
	buf := make([]byte, len(prefix)+24)
	offset := copy(buf, prefix)
	offset = appendUint64(buf, offset, uint64(foundID))
	offset = appendUint64(buf, offset, uint64(createdAt.UnixMicro()))
	appendUint64(buf, offset, uint64(claimID))
	return buf
}

// makePartialClaimFoundKey generates a partial key for found-record queries.
func makePartialClaimFoundKey(foundID core.ID) []byte {
	prefix := []byte(claimFoundIndexPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	appendUint64(buf, offset, uint64(foundID))
	return buf
}

// makeChatClaimKey generates a composite key for the thread index.
// Format: prefix:claimID:timestamp:messageID, so iteration yields a thread
// in timestamp order with the message ID breaking timestamp ties.
func makeChatClaimKey(claimID core.ID, timestamp time.Time, messageID core.ID) []byte {
	prefix := []byte(chatMessageClaimPrefix + ":")
	buf := make([]byte, len(prefix)+24)
	offset := copy(buf, prefix)
	offset = appendUint64(buf, offset, uint64(claimID))
	offset = appendUint64(buf, offset, uint64(timestamp.UnixMicro()))
	appendUint64(buf, offset, uint64(messageID))
	return buf
}

// makePartialChatClaimKey generates a partial key for thread queries.
func makePartialChatClaimKey(claimID core.ID) []byte {
	prefix := []byte(chatMessageClaimPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	appendUint64(buf, offset, uint64(claimID))
	return buf
}
