package repository

import (
	"context"

	"github.com/smartmeet/room-booking/internal/model"
)

// Each service owns exactly one of these repositories.  Two implementations
// exist for every interface: a mutex-guarded in-memory store (the default,
// and the variant used by tests) and a MySQL-backed store selected when
// DB_HOST is configured.  Create methods assign the record's ID in place.

// RoomRepo stores meeting rooms.
type RoomRepo interface {
	Create(ctx context.Context, room *model.Room) error
	List(ctx context.Context) ([]model.Room, error)
}

// UserRepo stores user accounts.  Create returns ErrUsernameExists when the
// username is already registered.
type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// BookingRepo stores room bookings.
type BookingRepo interface {
	Create(ctx context.Context, booking *model.Booking) error
	Get(ctx context.Context, id uint64) (model.Booking, error)
	List(ctx context.Context) ([]model.Booking, error)
	Update(ctx context.Context, booking model.Booking) error
	Delete(ctx context.Context, id uint64) error
}

// ReviewRepo stores room reviews.
type ReviewRepo interface {
	Create(ctx context.Context, review *model.Review) error
	Get(ctx context.Context, id uint64) (model.Review, error)
	ListByRoom(ctx context.Context, roomID uint64) ([]model.Review, error)
	Update(ctx context.Context, review model.Review) error
	Delete(ctx context.Context, id uint64) error
}
