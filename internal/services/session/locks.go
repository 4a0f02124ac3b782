package session

import (
	"sync"

	"github.com/promptduel/promptduel-go/internal/model"
)

// lockTable provides a per-session exclusive section. Every check-then-act
// sequence on a session (submit, read with eager finalization, the timer's
// final write) runs under that session's mutex, so operations on different
// sessions never contend.
type lockTable struct {
	mu    sync.Mutex
	locks map[model.SessionID]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{
		locks: make(map[model.SessionID]*sync.Mutex),
	}
}

// lock acquires the session's mutex and returns the unlock function
func (t *lockTable) lock(id model.SessionID) func() {
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
