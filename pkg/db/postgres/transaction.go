package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"roombook/pkg/db"
	apperrors "roombook/pkg/errors"

	"github.com/jmoiron/sqlx"
)

type txKey struct{}

type postgresTransactionManager struct {
	db *sqlx.DB
}

func NewTransactionManager(conn *sqlx.DB) db.TransactionManager {
	return &postgresTransactionManager{db: conn}
}

// ExecuteTransaction runs fn in a READ COMMITTED transaction carried on ctx.
// Nested calls reuse the outer transaction.
func (m *postgresTransactionManager) ExecuteTransaction(ctx context.Context, fn db.TransactionFunc) (err error) {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func TxFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx, ok
}

// Executor returns the transaction on ctx, or conn when there is none.
func Executor(ctx context.Context, conn sqlx.ExtContext) sqlx.ExtContext {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return conn
}
