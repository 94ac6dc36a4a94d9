// Package pubsub provides the synchronous, payload-free change notification
// protocol shared by every store. Listeners are invoked in registration order
// after a mutation commits and re-read state through the store's accessors.
package pubsub

import "sync"

type entry struct {
	id uint64
	fn func()
}

// Notifier holds an ordered set of listeners. The zero value is ready to use.
type Notifier struct {
	mu      sync.Mutex
	nextID  uint64
	entries []entry
}

// Subscribe registers fn and returns its unsubscribe function. Unsubscribing
// twice is a no-op. A listener registered while a notification is in flight
// is not invoked for that notification.
func (n *Notifier) Subscribe(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	id := n.nextID
	n.entries = append(n.entries, entry{id: id, fn: fn})
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, e := range n.entries {
			if e.id == id {
				n.entries = append(n.entries[:i], n.entries[i+1:]...)
				return
			}
		}
	}
}

// Notify invokes every listener registered at the time of the call, in
// registration order. The listener set is snapshotted first, so listeners may
// subscribe or unsubscribe from within a callback without affecting the
// in-flight notification.
func (n *Notifier) Notify() {
	n.mu.Lock()
	snapshot := make([]func(), len(n.entries))
	for i, e := range n.entries {
		snapshot[i] = e.fn
	}
	n.mu.Unlock()

	for _, fn := range snapshot {
		fn()
	}
}

// Len reports the number of registered listeners.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.entries)
}
