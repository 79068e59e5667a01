// Package state holds the aggregate store and the command layer: one method
// per user operation, each computing a brand-new aggregate value from the
// previous one. All mutation of a user's data flows through a Store; no
// other code path touches the collections directly.
package state

import (
	"sync"

	"github.com/mhasan/lifeos/backend/models"
)

// Origin records which side of the sync bridge produced a change. The
// outbound writer only persists local-origin changes; replaying a
// remote-origin change back to the remote store would loop forever.
type Origin int

const (
	// OriginLocal means the change came from a command issued in this process.
	OriginLocal Origin = iota
	// OriginRemote means the change is a replacement delivered by the
	// remote subscription.
	OriginRemote
)

// Change is delivered to subscribers after every accepted mutation. Data is
// a snapshot; subscribers may keep it without copying.
type Change struct {
	Data   models.AppData
	Origin Origin
}

// Store owns exactly one current value of the aggregate. Commands are
// applied atomically and in the order issued; readers only ever see
// immutable snapshots.
type Store struct {
	mu          sync.Mutex
	data        models.AppData
	subscribers []chan Change
}

// NewStore creates a store holding the hard-coded default aggregate.
func NewStore() *Store {
	return &Store{data: models.DefaultData()}
}

// Data returns a snapshot of the current aggregate.
func (s *Store) Data() models.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Replace swaps the aggregate wholesale. Used by the sync bridge for remote
// loads and by import; everything else goes through commands.
func (s *Store) Replace(data models.AppData, origin Origin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data.Clone()
	publish(s.subscribers, Change{Data: s.data.Clone(), Origin: origin})
}

// Subscribe registers a listener for aggregate changes. The channel is
// buffered; if a subscriber falls behind, the oldest undelivered change is
// dropped so the latest state always gets through.
func (s *Store) Subscribe() <-chan Change {
	ch := make(chan Change, 64)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()
	return ch
}

// apply runs one command: mutate receives a copy of the current aggregate
// and returns the next one. Commands never interleave, and the change is
// published before the mutex is released so subscribers see changes in
// mutation order.
func (s *Store) apply(mutate func(models.AppData) models.AppData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = mutate(s.data.Clone())
	publish(s.subscribers, Change{Data: s.data.Clone(), Origin: OriginLocal})
}

// publish fans a change out to subscribers. It runs under the store mutex
// and never blocks: a full buffer loses its oldest change instead.
func publish(subscribers []chan Change, change Change) {
	for _, ch := range subscribers {
		for {
			select {
			case ch <- change:
			default:
				// Full buffer: evict the oldest change and retry.
				select {
				case <-ch:
				default:
				}
				continue
			}
			break
		}
	}
}
