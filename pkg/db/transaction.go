// Package db defines the storage-neutral transaction contract. Drivers live in
// the mongo and postgres subpackages.
package db

import "context"

// TransactionFunc runs inside a transaction. Repository calls made with the
// ctx it receives join the transaction.
type TransactionFunc func(ctx context.Context) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

// NoopTransactionManager runs fn directly. Used by in-memory stores and tests.
type NoopTransactionManager struct{}

func (NoopTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	return fn(ctx)
}
