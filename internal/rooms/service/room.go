package service

import (
	"context"
	"errors"
	roomserrors "roombook/internal/rooms/errors"
	"roombook/internal/rooms/repository"
	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/model"
	"roombook/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

type RoomService interface {
	List(ctx context.Context) ([]*model.Room, error)
	GetByRoomID(ctx context.Context, roomID string) (*model.Room, error)
	// Seed upserts the default catalogue.
	Seed(ctx context.Context) (*model.SeedResult, error)
	// EnsureSeeded seeds only when no room exists yet.
	EnsureSeeded(ctx context.Context) error
}

type roomService struct {
	repo     repository.RoomRepository
	validate *validator.Validate
	cfg      *config.Config
	catalog  func() []*model.Room
}

func NewRoomService(repo repository.RoomRepository, cfg *config.Config) RoomService {
	v := validator.New()
	if err := model.RegisterValidations(v); err != nil {
		cfg.Log.Fatal("Failed to register room validations", "error", err)
	}
	return &roomService{
		repo:     repo,
		validate: v,
		cfg:      cfg,
		catalog:  model.DefaultRooms,
	}
}

func (s *roomService) List(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.FromContext(ctx).Error("Failed to list rooms", "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	return rooms, nil
}

// GetByRoomID only trims roomID, so a malformed key resolves to NotFound.
func (s *roomService) GetByRoomID(ctx context.Context, roomID string) (*model.Room, error) {
	roomID = sanitizer.SanitizeRoomID(roomID)
	if roomID == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.repo.FindByRoomID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", roomID)
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}
	return room, nil
}

func (s *roomService) Seed(ctx context.Context) (*model.SeedResult, error) {
	log := s.cfg.Log.FromContext(ctx)

	rooms := s.catalog()
	for _, room := range rooms {
		room.RoomID = sanitizer.SanitizeRoomID(room.RoomID)
		room.Name = sanitizer.TrimAndNormalize(room.Name)
		if err := s.validate.Struct(room); err != nil {
			log.Error("Invalid room in seed catalogue", "room_id", room.RoomID, "error", err)
			return nil, apperrors.Internal("Invalid room catalogue", err)
		}
	}

	result, err := s.repo.UpsertMany(ctx, rooms)
	if err != nil {
		log.Error("Failed to seed rooms", "error", err)
		return nil, apperrors.Internal("Failed to seed rooms", err)
	}

	log.Info("Rooms seeded",
		"inserted", result.Inserted,
		"updated", result.Updated,
		"total", result.Total,
	)
	return result, nil
}

func (s *roomService) EnsureSeeded(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return apperrors.Internal("Failed to count rooms", err)
	}
	if count > 0 {
		s.cfg.Log.Debug("Room catalogue already present, skipping seed", "count", count)
		return nil
	}
	_, err = s.Seed(ctx)
	return err
}
