package service

import (
	"context"
	"errors"
	"roombook/internal/civiltime"
	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/model"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type AnalyticsService interface {
	// Usage aggregates CONFIRMED bookings starting between local midnight of
	// from and the end of to, both YYYY-MM-DD in the business zone.
	Usage(ctx context.Context, from, to string) ([]*model.RoomUsage, error)
}

type BookingLister interface {
	ListConfirmedBetween(ctx context.Context, from, to time.Time) ([]*model.Booking, error)
}

type RoomLister interface {
	List(ctx context.Context) ([]*model.Room, error)
}

type analyticsService struct {
	bookings BookingLister
	rooms    RoomLister
	loc      *time.Location
	cfg      *config.Config
}

func NewAnalyticsService(bookings BookingLister, rooms RoomLister, cfg *config.Config) AnalyticsService {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &analyticsService{
		bookings: bookings,
		rooms:    rooms,
		loc:      loc,
		cfg:      cfg,
	}
}

var hour = decimal.NewFromInt(int64(time.Hour))

type usageAccumulator struct {
	usage   *model.RoomUsage
	hours   decimal.Decimal
	revenue decimal.Decimal
}

func (s *analyticsService) Usage(ctx context.Context, from, to string) ([]*model.RoomUsage, error) {
	if from == "" || to == "" {
		return nil, apperrors.Validation("from and to are required (YYYY-MM-DD)", nil)
	}

	start, err := civiltime.StartOfDay(from, s.loc)
	if err != nil {
		return nil, apperrors.Validation("Invalid date", map[string]any{"from": from})
	}
	end, err := civiltime.EndOfDay(to, s.loc)
	if err != nil {
		return nil, apperrors.Validation("Invalid date", map[string]any{"to": to})
	}
	if end.Before(start) {
		return nil, apperrors.Validation("from must not be after to", map[string]any{"from": from, "to": to})
	}

	var bookings []*model.Booking
	var rooms []*model.Room
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = s.bookings.ListConfirmedBetween(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		rooms, err = s.rooms.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		s.cfg.Log.FromContext(ctx).Error("Failed to load analytics inputs", "error", err)
		return nil, apperrors.Internal("Failed to compute analytics", err)
	}

	names := make(map[string]string, len(rooms))
	for _, r := range rooms {
		names[r.RoomID] = r.Name
	}

	order := []string{}
	byRoom := map[string]*usageAccumulator{}
	for _, b := range bookings {
		acc, ok := byRoom[b.RoomID]
		if !ok {
			name := names[b.RoomID]
			if name == "" {
				name = b.RoomID
			}
			acc = &usageAccumulator{usage: &model.RoomUsage{RoomID: b.RoomID, RoomName: name}}
			byRoom[b.RoomID] = acc
			order = append(order, b.RoomID)
		}
		acc.hours = acc.hours.Add(decimal.NewFromInt(int64(b.Duration())).Div(hour))
		acc.revenue = acc.revenue.Add(decimal.NewFromFloat(b.TotalPrice))
	}

	result := make([]*model.RoomUsage, 0, len(order))
	for _, id := range order {
		acc := byRoom[id]
		acc.usage.TotalHours = acc.hours.Round(2).InexactFloat64()
		acc.usage.TotalRevenue = acc.revenue.Round(2).InexactFloat64()
		result = append(result, acc.usage)
	}

	s.cfg.Log.FromContext(ctx).Debug("Analytics computed",
		"from", from,
		"to", to,
		"bookings", len(bookings),
		"rooms", len(result),
	)
	return result, nil
}
