package memory

import (
	"context"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/database"
)

type txKey struct{}

// Transactor runs fn against the store and rolls every change back when fn
// fails. Transactions are serialized; a nested call joins the outer one.
type Transactor struct {
	store *Store
}

func NewTransactor(store *Store) database.Transactor {
	return &Transactor{store: store}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(bool); ok {
		return fn(ctx)
	}

	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	snap := t.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}
