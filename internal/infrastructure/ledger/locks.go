package ledger

import (
	"bytes"
	"sort"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// lockManager serializes transactions sharing a writable address. Addresses
// are always locked in ascending order, so that two transactions can never
// wait for each other.
type lockManager struct {
	locker sync.Mutex
	locks  map[solana.PublicKey]*addressLock
}

type addressLock struct {
	sync.RWMutex
	refs int
}

func newLockManager() *lockManager {
	return &lockManager{locks: make(map[solana.PublicKey]*addressLock)}
}

// acquire locks every given address, exclusively if writable, and returns
// the function that releases them all.
func (m *lockManager) acquire(writable map[solana.PublicKey]bool) func() {
	keys := make([]solana.PublicKey, 0, len(writable))
	for key := range writable {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})

	m.locker.Lock()
	locks := make([]*addressLock, 0, len(keys))
	for _, key := range keys {
		l, ok := m.locks[key]
		if !ok {
			l = &addressLock{}
			m.locks[key] = l
		}
		l.refs++
		locks = append(locks, l)
	}
	m.locker.Unlock()

	for i, l := range locks {
		if writable[keys[i]] {
			l.Lock()
		} else {
			l.RLock()
		}
	}

	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			if writable[keys[i]] {
				locks[i].Unlock()
			} else {
				locks[i].RUnlock()
			}
		}

		m.locker.Lock()
		defer m.locker.Unlock()
		for i, l := range locks {
			l.refs--
			if l.refs == 0 {
				delete(m.locks, keys[i])
			}
		}
	}
}
