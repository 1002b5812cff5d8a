package session

import "sync"

// notifier is a minimal subscription list. Components publish state changes
// through it instead of letting observers reach into their state; observers
// re-read the component's accessors on each notification.
type notifier struct {
	mu   sync.Mutex
	subs []func()
}

// Subscribe registers fn to run after every state change.
func (n *notifier) Subscribe(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

// notify runs all subscribers. Callers must not hold the component lock in a
// way that a subscriber reading accessors would deadlock on; components
// therefore notify after releasing their state mutex.
func (n *notifier) notify() {
	n.mu.Lock()
	subs := make([]func(), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
