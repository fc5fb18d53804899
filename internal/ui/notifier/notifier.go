// Package notifier fans state revisions out to SSE listeners.
package notifier

import "sync"

// Notifier broadcasts the latest state revision to all subscribed listeners.
// Each listener holds at most one pending revision; a newer broadcast
// replaces an unread one, so slow listeners skip straight to the latest state.
type Notifier struct {
	mu        sync.Mutex
	listeners map[chan uint64]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan uint64]struct{}),
	}
}

// Subscribe returns a channel that receives revisions as the state changes.
// The caller must call Unsubscribe when done to prevent goroutine leaks.
func (n *Notifier) Subscribe() chan uint64 {
	ch := make(chan uint64, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan uint64) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast sends revision to all listeners without blocking.
func (n *Notifier) Broadcast(revision uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.listeners {
		select {
		case ch <- revision:
		default:
			// drop the stale pending revision
			select {
			case <-ch:
			default:
			}
			ch <- revision
		}
	}
}

// Count returns the number of subscribed listeners.
func (n *Notifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}
