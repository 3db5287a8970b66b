package ledger

import "sync"

// cardLocks serializes mutations per card number. Every ledger operation
// is a read-modify-write over one record with no optimistic-concurrency
// token, so at most one mutation may be in flight per card.
type cardLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newCardLocks() *cardLocks {
	return &cardLocks{locks: make(map[string]*sync.Mutex)}
}

func (c *cardLocks) lock(cardNumber string) func() {
	c.mu.Lock()
	l, ok := c.locks[cardNumber]
	if !ok {
		l = &sync.Mutex{}
		c.locks[cardNumber] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}
