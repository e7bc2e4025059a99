package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	bookingserrors "roombook/internal/bookings/errors"
	"roombook/pkg/config"
	"roombook/pkg/db"
	pgtx "roombook/pkg/db/postgres"
	"roombook/pkg/model"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	TableName = "bookings"

	// exclusion_violation, raised by the no-overlap constraint.
	pgExclusionViolation = "23P01"
)

const bookingColumns = `id, room_id, requester_name, start_time, end_time, total_price, status, created_at`

type postgresBookingRepository struct {
	cfg       *config.Config
	db        *sqlx.DB
	txManager db.TransactionManager
}

func NewPostgresBookingRepository(cfg *config.Config) BookingRepository {
	return &postgresBookingRepository{
		cfg:       cfg,
		db:        cfg.Client.Postgres,
		txManager: pgtx.NewTransactionManager(cfg.Client.Postgres),
	}
}

func (r *postgresBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.ID = uuid.NewString()
	query := `INSERT INTO ` + TableName + ` (` + bookingColumns + `)
		VALUES (:id, :room_id, :requester_name, :start_time, :end_time, :total_price, :status, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, pgtx.Executor(ctx, r.db), query, booking); err != nil {
		booking.ID = ""
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation {
			return bookingserrors.ErrTimeConflict
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *postgresBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	query := `SELECT ` + bookingColumns + ` FROM ` + TableName + ` WHERE id = $1`
	if err := sqlx.GetContext(ctx, pgtx.Executor(ctx, r.db), &booking, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return normalize(&booking), nil
}

func (r *postgresBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query := `SELECT ` + bookingColumns + ` FROM ` + TableName + `
		ORDER BY start_time DESC, id DESC LIMIT $1 OFFSET $2`
	return r.selectBookings(ctx, query, limit, offset)
}

func (r *postgresBookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var count int64
	if err := sqlx.GetContext(ctx, pgtx.Executor(ctx, r.db), &count, `SELECT COUNT(*) FROM `+TableName); err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *postgresBookingRepository) FindOverlapping(ctx context.Context, roomID string, start, end time.Time) (*model.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var booking model.Booking
	query := `SELECT ` + bookingColumns + ` FROM ` + TableName + `
		WHERE room_id = $1 AND status = $2 AND start_time < $3 AND end_time > $4
		ORDER BY start_time ASC LIMIT 1`
	err := sqlx.GetContext(ctx, pgtx.Executor(ctx, r.db), &booking, query, roomID, model.BookingStatusConfirmed, end, start)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}
	return normalize(&booking), nil
}

func (r *postgresBookingRepository) FindConfirmedBetween(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query := `SELECT ` + bookingColumns + ` FROM ` + TableName + `
		WHERE status = $1 AND start_time >= $2 AND start_time <= $3
		ORDER BY start_time ASC`
	return r.selectBookings(ctx, query, model.BookingStatusConfirmed, from, to)
}

func (r *postgresBookingRepository) UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	query := `UPDATE ` + TableName + ` SET status = $1 WHERE id = $2 AND status = $3`
	result, err := pgtx.Executor(ctx, r.db).ExecContext(ctx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return bookingserrors.ErrNoRowsChanged
	}
	return nil
}

// LockRoom takes a row lock on the room, held until the transaction ends.
func (r *postgresBookingRepository) LockRoom(ctx context.Context, roomID string) error {
	var locked string
	query := `SELECT room_id FROM rooms WHERE room_id = $1 FOR UPDATE`
	if err := sqlx.GetContext(ctx, pgtx.Executor(ctx, r.db), &locked, query, roomID); err != nil {
		return fmt.Errorf("failed to lock room %s: %w", roomID, err)
	}
	return nil
}

func (r *postgresBookingRepository) ExecuteTransaction(ctx context.Context, fn db.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func (r *postgresBookingRepository) selectBookings(ctx context.Context, query string, args ...any) ([]*model.Booking, error) {
	bookings := []*model.Booking{}
	if err := sqlx.SelectContext(ctx, pgtx.Executor(ctx, r.db), &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	for _, b := range bookings {
		normalize(b)
	}
	return bookings, nil
}

func normalize(b *model.Booking) *model.Booking {
	b.StartTime = b.StartTime.UTC()
	b.EndTime = b.EndTime.UTC()
	b.CreatedAt = b.CreatedAt.UTC()
	return b
}
