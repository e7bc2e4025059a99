package repository

import (
	"context"
	"fmt"
	"roombook/pkg/config"
	"roombook/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const LockCollectionName = "Booking_locks"

// BookingLockRepository maintains one guard document per room.
type BookingLockRepository interface {
	Lock(ctx context.Context, roomID string) (*model.BookingLock, error)
}

type mongoBookingLockRepository struct {
	collection *mongo.Collection
}

func NewBookingLockRepository(cfg *config.Config) BookingLockRepository {
	database := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		collection: database.Collection(LockCollectionName),
	}
}

// Lock bumps the room's guard version. Called inside a transaction, it makes
// any other transaction touching the same room fail with a write conflict
// until this one ends.
func (r *mongoBookingLockRepository) Lock(ctx context.Context, roomID string) (*model.BookingLock, error) {
	update := bson.M{
		"$inc": bson.M{"version": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var lock model.BookingLock
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": roomID}, update, opts).Decode(&lock); err != nil {
		return nil, fmt.Errorf("failed to lock room %s: %w", roomID, err)
	}
	return &lock, nil
}
