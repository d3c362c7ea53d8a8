// Package capacity exposes the advisory remaining-spots indicator. It is
// read-only: nothing here, and nothing in the persist path, rejects a
// signup once the list is full. The landing page only disables its
// submit affordance.
package capacity

import "context"

// CountStore reads the total number of waitlist entries.
type CountStore interface {
	CountEntries(ctx context.Context) (int64, error)
}

type Gate struct {
	store CountStore
	max   int
}

func NewGate(store CountStore, max int) *Gate {
	return &Gate{store: store, max: max}
}

// Remaining reports how many spots are left, floored at zero.
func (g *Gate) Remaining(ctx context.Context) (int, error) {
	count, err := g.store.CountEntries(ctx)
	if err != nil {
		return 0, err
	}
	remaining := g.max - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Full reports whether the advisory cap has been reached.
func (g *Gate) Full(ctx context.Context) (bool, error) {
	remaining, err := g.Remaining(ctx)
	if err != nil {
		return false, err
	}
	return remaining == 0, nil
}
