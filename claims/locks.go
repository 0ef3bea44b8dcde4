package claims

import (
	"sync"

	"github.com/refindhq/refind/core"
)

// lockTable hands out one mutex per found record so claim operations on the
// same item serialize while operations on different items proceed in
// parallel. Locks are never evicted; the table grows with the number of
// distinct found records touched, which stays small for a single process.
type lockTable struct {
	mu    sync.Mutex
	locks map[core.ID]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{
		locks: make(map[core.ID]*sync.Mutex),
	}
}

// lock acquires the mutex for a found record, creating it on first use.
// The caller must call the returned unlock function.
func (t *lockTable) lock(id core.ID) func() {
	t.mu.Lock()
	m, ok := t.locks[id]
	if !ok {
		m = &sync.Mutex{}
		t.locks[id] = m
	}
	t.mu.Unlock()

	m.Lock()
	return m.Unlock
}
