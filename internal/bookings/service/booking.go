package service

import (
	"context"
	"errors"
	"fmt"
	"roombook/internal/bookings/events"
	bookingserrors "roombook/internal/bookings/errors"
	"roombook/internal/bookings/repository"
	"roombook/internal/bookings/validator"
	"roombook/internal/civiltime"
	"roombook/internal/pricing"
	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/keylock"
	"roombook/pkg/model"
	"roombook/pkg/sanitizer"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	MaxBookingDuration = 12 * time.Hour
	// CancellationNotice is how far ahead of the start a booking must be
	// canceled. Exactly this much notice is not enough.
	CancellationNotice = 2 * time.Hour
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.CancelResult, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	// List returns bookings newest start first with the total count.
	List(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	// ListConfirmedBetween returns CONFIRMED bookings starting in [from, to].
	ListConfirmedBetween(ctx context.Context, from, to time.Time) ([]*model.Booking, error)
	// FindConflict returns the earliest CONFIRMED booking of roomID that
	// overlaps [start, end), or nil.
	FindConflict(ctx context.Context, roomID string, start, end time.Time) (*model.Booking, error)
}

// RoomFinder resolves a room by its business key. Missing rooms come back
// as a NOT_FOUND AppError.
type RoomFinder interface {
	GetByRoomID(ctx context.Context, roomID string) (*model.Room, error)
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type Option func(*bookingService)

func WithClock(c Clock) Option {
	return func(s *bookingService) { s.clock = c }
}

type bookingService struct {
	repo      repository.BookingRepository
	rooms     RoomFinder
	validator *validator.BookingValidator
	events    events.Publisher
	locks     *keylock.KeyLock
	clock     Clock
	loc       *time.Location
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	rooms RoomFinder,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
	opts ...Option,
) BookingService {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	s := &bookingService{
		repo:      repo,
		rooms:     rooms,
		validator: validator,
		events:    publisher,
		locks:     keylock.New(),
		clock:     systemClock{},
		loc:       loc,
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	log := s.cfg.Log.FromContext(ctx)

	if req != nil {
		clean := *req
		clean.RoomID = sanitizer.SanitizeRoomID(req.RoomID)
		clean.RequesterName = sanitizer.SanitizePersonName(req.RequesterName)
		req = &clean
	}
	if err := s.validator.ValidatePresence(req); err != nil {
		log.Warn("Booking validation failed", "error", err)
		return nil, validationError("Missing or malformed fields", err)
	}

	start := req.StartTime.UTC().Truncate(time.Millisecond)
	end := req.EndTime.UTC().Truncate(time.Millisecond)

	if err := s.validator.ValidateInterval(start, end); err != nil {
		return nil, validationError("start_time must be before end_time", err)
	}
	if err := s.validator.ValidateDuration(start, end); err != nil {
		return nil, validationError("Duration must be at most 12 hours", err)
	}

	room, err := s.rooms.GetByRoomID(ctx, req.RoomID)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			return nil, err
		}
		log.Error("Failed to load room", "room_id", req.RoomID, "error", err)
		return nil, apperrors.Internal("Failed to load room", err)
	}

	unlock := s.locks.Lock(room.RoomID)
	defer unlock()

	var booking *model.Booking
	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.LockRoom(txCtx, room.RoomID); err != nil {
			return err
		}

		existing, err := s.findConflict(txCtx, room.RoomID, start, end)
		if err != nil {
			return err
		}
		if existing != nil {
			return s.conflictError(existing)
		}

		quote, err := pricing.Price(start, end, room.BaseHourlyRate, s.loc)
		if err != nil {
			return apperrors.Internal("Failed to price booking", err)
		}

		candidate := &model.Booking{
			RoomID:        room.RoomID,
			RequesterName: req.RequesterName,
			StartTime:     start,
			EndTime:       end,
			TotalPrice:    quote.Total.InexactFloat64(),
			Status:        model.BookingStatusConfirmed,
			CreatedAt:     s.clock.Now().UTC().Truncate(time.Millisecond),
		}
		if err := s.repo.Create(txCtx, candidate); err != nil {
			return err
		}
		booking = candidate
		return nil
	})
	if err != nil {
		if errors.Is(err, bookingserrors.ErrTimeConflict) {
			return nil, s.storeConflictError(ctx, room.RoomID, start, end)
		}
		if apperrors.IsAppError(err) {
			log.Warn("Booking rejected", "room_id", room.RoomID, "error", err)
			return nil, err
		}
		log.Error("Failed to create booking", "room_id", room.RoomID, "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	log.Info("Booking created successfully",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
		"total_price", booking.TotalPrice,
	)
	s.publish(ctx, events.BookingCreated, booking)
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) (*model.CancelResult, error) {
	log := s.cfg.Log.FromContext(ctx)

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Status == model.BookingStatusCanceled {
		return nil, apperrors.Validation("Booking already canceled", map[string]any{"id": booking.ID})
	}

	notice := booking.StartTime.Sub(s.clock.Now())
	if notice <= CancellationNotice {
		return nil, apperrors.Validation("Cancellation allowed only > 2 hours before start time", map[string]any{
			"id":         booking.ID,
			"start_time": booking.StartTime.UTC().Format(time.RFC3339),
		})
	}

	if !booking.Status.CanTransitionTo(model.BookingStatusCanceled) {
		return nil, apperrors.Internal("Cancellation failed", fmt.Errorf("unexpected status %q", booking.Status))
	}

	err = s.repo.UpdateStatus(ctx, booking.ID, model.BookingStatusConfirmed, model.BookingStatusCanceled)
	if err != nil {
		log.Error("Failed to cancel booking", "id", booking.ID, "error", err)
		return nil, apperrors.Internal("Cancellation failed", err)
	}

	booking.Status = model.BookingStatusCanceled
	log.Info("Booking canceled successfully", "id", booking.ID, "room_id", booking.RoomID)
	s.publish(ctx, events.BookingCanceled, booking)

	return &model.CancelResult{ID: booking.ID, Status: model.BookingStatusCanceled}, nil
}

// GetByID maps a malformed id to NotFound since no booking can have it.
func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.NotFound("Booking")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.FromContext(ctx).Error("Failed to retrieve booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}
	return booking, nil
}

func (s *bookingService) List(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)
	log := s.cfg.Log.FromContext(ctx)

	var count int64
	var bookings []*model.Booking
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if count, err = s.repo.Count(gctx); err != nil {
			log.Error("Failed to count bookings", "error", err)
			return apperrors.Internal("Failed to count bookings", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		if bookings, err = s.repo.FindAll(gctx, limit, offset); err != nil {
			log.Error("Failed to list bookings", "error", err)
			return apperrors.Internal("Failed to retrieve bookings", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return bookings, count, nil
}

func (s *bookingService) ListConfirmedBetween(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
	if to.Before(from) {
		return nil, apperrors.Validation("from must not be after to", map[string]any{
			"from": from.UTC().Format(time.RFC3339),
			"to":   to.UTC().Format(time.RFC3339),
		})
	}

	bookings, err := s.repo.FindConfirmedBetween(ctx, from.UTC(), to.UTC())
	if err != nil {
		s.cfg.Log.FromContext(ctx).Error("Failed to list confirmed bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) FindConflict(ctx context.Context, roomID string, start, end time.Time) (*model.Booking, error) {
	existing, err := s.findConflict(ctx, roomID, start.UTC(), end.UTC())
	if err != nil {
		return nil, apperrors.Internal("Failed to check existing bookings", err)
	}
	return existing, nil
}

// --- Helpers ---

func (s *bookingService) findConflict(ctx context.Context, roomID string, start, end time.Time) (*model.Booking, error) {
	existing, err := s.repo.FindOverlapping(ctx, roomID, start, end)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !Overlaps(existing.StartTime, existing.EndTime, start, end) {
		return nil, fmt.Errorf("store returned non-overlapping booking %s", existing.ID)
	}
	return existing, nil
}

func (s *bookingService) conflictError(existing *model.Booking) *apperrors.AppError {
	msg := fmt.Sprintf("Room already booked from %s to %s",
		civiltime.FormatClock(existing.StartTime, s.loc),
		civiltime.FormatClock(existing.EndTime, s.loc),
	)
	return apperrors.Conflict(msg).WithDetails(map[string]any{
		"existing_booking_id": existing.ID,
		"existing_start_time": existing.StartTime.UTC().Format(time.RFC3339),
		"existing_end_time":   existing.EndTime.UTC().Format(time.RFC3339),
	})
}

// storeConflictError reports a conflict the store rejected on commit. The
// winning booking is committed by then, so it is looked up outside the
// failed transaction.
func (s *bookingService) storeConflictError(ctx context.Context, roomID string, start, end time.Time) *apperrors.AppError {
	existing, err := s.findConflict(ctx, roomID, start, end)
	if err != nil || existing == nil {
		s.cfg.Log.FromContext(ctx).Warn("Conflicting booking not found after constraint violation",
			"room_id", roomID,
			"error", err,
		)
		return apperrors.Conflict("Room already booked for the requested time")
	}
	return s.conflictError(existing)
}

// publish is best effort: the booking is already committed.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	if err := s.events.Publish(ctx, eventType, booking); err != nil {
		s.cfg.Log.FromContext(ctx).Warn("Failed to publish booking event",
			"event_type", eventType,
			"id", booking.ID,
			"error", err,
		)
	}
}

func validationError(message string, err error) *apperrors.AppError {
	details := map[string]any{"error": err.Error()}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details["fields"] = verrs.Fields()
	}
	return apperrors.Validation(message, details)
}
