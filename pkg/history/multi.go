package history

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Multi writes every record to a primary store and any number of mirrors
// concurrently. Reads are served by the primary.
type Multi struct {
	primary Store
	mirrors []Store
}

// NewMulti returns a store fanning appends out to primary and mirrors.
func NewMulti(primary Store, mirrors ...Store) *Multi {
	return &Multi{primary: primary, mirrors: mirrors}
}

// Append writes rec to every store and returns the first error.
func (m *Multi) Append(ctx context.Context, rec Record) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.primary.Append(ctx, rec)
	})
	for _, s := range m.mirrors {
		g.Go(func() error {
			return s.Append(ctx, rec)
		})
	}
	return g.Wait()
}

// List implements Store.
func (m *Multi) List(ctx context.Context, limit int) ([]Record, error) {
	return m.primary.List(ctx, limit)
}

var _ Store = (*Multi)(nil)
