package postgres

import (
	"context"
	"database/sql"
	"errors"
	"roombook/pkg/db"
	"roombook/pkg/logger"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
)

type recordingExec struct {
	sqlx.ExtContext
	queries []string
	err     error
}

func (r *recordingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	r.queries = append(r.queries, query)
	return nil, r.err
}

func TestSchema_DeclaresOverlapConstraint(t *testing.T) {
	for _, fragment := range []string{
		"btree_gist",
		"CREATE TABLE IF NOT EXISTS rooms",
		"CREATE TABLE IF NOT EXISTS bookings",
		"tstzrange(start_time, end_time, '[)') WITH &&",
		"WHERE (status = 'CONFIRMED')",
	} {
		if !strings.Contains(Schema, fragment) {
			t.Errorf("schema is missing %q", fragment)
		}
	}
}

func TestRunMigration_AppliesSchemaOnce(t *testing.T) {
	exec := &recordingExec{}
	if err := runMigration(context.Background(), exec, db.NoopTransactionManager{}, logger.Discard()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exec.queries) != 1 || exec.queries[0] != Schema {
		t.Errorf("executed %d statements, want the schema once", len(exec.queries))
	}
}

func TestRunMigration_PropagatesFailure(t *testing.T) {
	exec := &recordingExec{err: errors.New("permission denied to create extension")}
	if err := runMigration(context.Background(), exec, db.NoopTransactionManager{}, logger.Discard()); err == nil {
		t.Fatal("expected error")
	}
}
