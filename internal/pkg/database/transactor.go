package database

import "context"

// Transactor runs fn as one unit of work. Repositories reached from fn with
// the context it receives take part in the same transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
