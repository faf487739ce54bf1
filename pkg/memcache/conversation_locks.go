// pkg/memcache/conversation_locks.go
package memcache

import (
	"sync"
)

// ConversationLocks serializes turns per conversation within a single
// process. Two turns for the same conversation submitted concurrently would
// otherwise race on the persisted quiz state; across multiple instances this
// degrades to last-write-wins.
type ConversationLocks struct {
	mu    sync.Mutex
	locks map[string]*conversationLock
}

type conversationLock struct {
	mu   sync.Mutex
	refs int
}

func NewConversationLocks() *ConversationLocks {
	return &ConversationLocks{
		locks: make(map[string]*conversationLock),
	}
}

// Lock blocks until the conversation's turn slot is free and returns the
// unlock function. Entries are reference counted so the map does not grow
// with every conversation ever seen.
func (c *ConversationLocks) Lock(conversationID string) func() {
	c.mu.Lock()
	l, ok := c.locks[conversationID]
	if !ok {
		l = &conversationLock{}
		c.locks[conversationID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, conversationID)
		}
		c.mu.Unlock()
	}
}
