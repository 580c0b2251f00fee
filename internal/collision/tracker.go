// Package collision tracks sample set names and their hashes while a container is encoded.
package collision

import (
	"fmt"

	"github.com/arloliu/guess/errs"
)

// Tracker maps set IDs to names and rejects duplicates.
//
// Sets are looked up by the hash of their name, so two distinct names with
// the same hash cannot share a container. Both exact duplicates and hash
// collisions are reported as ErrDuplicateSetName.
type Tracker struct {
	names map[uint64]string // Hash → name mapping for collision detection
	order []string          // Names in tracking order
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint64]string),
	}
}

// Track records name under id.
//
// Returns:
//   - error: ErrEmptySetName for an empty name, ErrDuplicateSetName if the
//     name or its hash was already tracked
func (t *Tracker) Track(name string, id uint64) error {
	if name == "" {
		return errs.ErrEmptySetName
	}

	if existing, ok := t.names[id]; ok {
		if existing == name {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateSetName, name)
		}

		return fmt.Errorf("%w: %q collides with %q (id %#x)", errs.ErrDuplicateSetName, name, existing, id)
	}

	t.names[id] = name
	t.order = append(t.order, name)

	return nil
}

// Names returns the tracked names in tracking order.
// The slice is owned by the tracker and is only valid until the next Track or Reset.
func (t *Tracker) Names() []string {
	return t.order
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset clears all tracked names, keeping the allocated capacity.
func (t *Tracker) Reset() {
	clear(t.names)
	t.order = t.order[:0]
}
