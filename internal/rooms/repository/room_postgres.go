package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	roomserrors "roombook/internal/rooms/errors"
	"roombook/pkg/config"
	"roombook/pkg/db"
	pgtx "roombook/pkg/db/postgres"
	"roombook/pkg/model"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	TableName = "rooms"

	roomColumns = `id, room_id, name, base_hourly_rate, capacity, created_at, updated_at`
)

type postgresRoomRepository struct {
	cfg       *config.Config
	db        *sqlx.DB
	txManager db.TransactionManager
}

func NewPostgresRoomRepository(cfg *config.Config) RoomRepository {
	return &postgresRoomRepository{
		cfg:       cfg,
		db:        cfg.Client.Postgres,
		txManager: pgtx.NewTransactionManager(cfg.Client.Postgres),
	}
}

func (r *postgresRoomRepository) FindByRoomID(ctx context.Context, roomID string) (*model.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var room model.Room
	query := `SELECT ` + roomColumns + ` FROM ` + TableName + ` WHERE room_id = $1`
	if err := sqlx.GetContext(ctx, pgtx.Executor(ctx, r.db), &room, query, roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, roomserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return &room, nil
}

func (r *postgresRoomRepository) FindAll(ctx context.Context) ([]*model.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	rooms := []*model.Room{}
	query := `SELECT ` + roomColumns + ` FROM ` + TableName + ` ORDER BY name ASC, room_id ASC`
	if err := sqlx.SelectContext(ctx, pgtx.Executor(ctx, r.db), &rooms, query); err != nil {
		return nil, fmt.Errorf("failed to find rooms: %w", err)
	}
	return rooms, nil
}

func (r *postgresRoomRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var count int64
	if err := sqlx.GetContext(ctx, pgtx.Executor(ctx, r.db), &count, `SELECT COUNT(*) FROM `+TableName); err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return count, nil
}

// UpsertMany runs every upsert in one transaction. xmax = 0 identifies rows
// the statement inserted rather than updated.
func (r *postgresRoomRepository) UpsertMany(ctx context.Context, rooms []*model.Room) (*model.SeedResult, error) {
	result := &model.SeedResult{Total: len(rooms)}
	if len(rooms) == 0 {
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	query := `INSERT INTO ` + TableName + ` (room_id, name, base_hourly_rate, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (room_id) DO UPDATE
		SET name = EXCLUDED.name,
			base_hourly_rate = EXCLUDED.base_hourly_rate,
			capacity = EXCLUDED.capacity,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0) AS inserted`

	err := r.txManager.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()
		exec := pgtx.Executor(txCtx, r.db)
		for _, room := range rooms {
			var inserted bool
			if err := sqlx.GetContext(txCtx, exec, &inserted, query,
				room.RoomID, room.Name, room.BaseHourlyRate, room.Capacity, now); err != nil {
				return fmt.Errorf("failed to upsert room %s: %w", room.RoomID, err)
			}
			if inserted {
				result.Inserted++
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
