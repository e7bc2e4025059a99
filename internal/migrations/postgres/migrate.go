package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"roombook/pkg/db"
	pgtx "roombook/pkg/db/postgres"
	"roombook/pkg/logger"

	"github.com/jmoiron/sqlx"
)

// Schema is applied as a single script. Every statement is idempotent.
//
//go:embed schema.sql
var Schema string

// RunMigration applies Schema inside one transaction.
func RunMigration(ctx context.Context, conn *sqlx.DB, log *logger.Logger) error {
	return runMigration(ctx, conn, pgtx.NewTransactionManager(conn), log)
}

func runMigration(ctx context.Context, conn sqlx.ExtContext, txManager db.TransactionManager, log *logger.Logger) error {
	log.Info("Running PostgreSQL migrations")

	err := txManager.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if _, err := pgtx.Executor(txCtx, conn).ExecContext(txCtx, Schema); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("All PostgreSQL migrations applied successfully")
	return nil
}
