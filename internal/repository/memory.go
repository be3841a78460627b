package repository

import (
	"context"
	"sync"

	"github.com/smartmeet/room-booking/internal/model"
)

// In-memory repositories.  Each store guards its slice and ID counter with
// a mutex so concurrent request handlers cannot race on writes.  Records
// are copied in and out; callers never share memory with the store.

// MemoryRoomRepo is the in-memory RoomRepo variant.
type MemoryRoomRepo struct {
	mu     sync.Mutex
	rooms  []model.Room
	nextID uint64
}

func NewMemoryRoomRepo() *MemoryRoomRepo { return &MemoryRoomRepo{nextID: 1} }

func (r *MemoryRoomRepo) Create(_ context.Context, room *model.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room.ID = r.nextID
	r.nextID++
	r.rooms = append(r.rooms, *room)
	return nil
}

func (r *MemoryRoomRepo) List(_ context.Context) ([]model.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Room, len(r.rooms))
	copy(out, r.rooms)
	return out, nil
}

// MemoryUserRepo is the in-memory UserRepo variant.
type MemoryUserRepo struct {
	mu     sync.Mutex
	users  []model.User
	nextID uint64
}

func NewMemoryUserRepo() *MemoryUserRepo { return &MemoryUserRepo{nextID: 1} }

func (r *MemoryUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return ErrUsernameExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, *user)
	return nil
}

func (r *MemoryUserRepo) GetByUsername(_ context.Context, username string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (r *MemoryUserRepo) List(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// MemoryBookingRepo is the in-memory BookingRepo variant.
type MemoryBookingRepo struct {
	mu       sync.Mutex
	bookings []model.Booking
	nextID   uint64
}

func NewMemoryBookingRepo() *MemoryBookingRepo { return &MemoryBookingRepo{nextID: 1} }

func (r *MemoryBookingRepo) Create(_ context.Context, b *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.nextID
	r.nextID++
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *MemoryBookingRepo) Get(_ context.Context, id uint64) (model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Booking{}, ErrNotFound
}

func (r *MemoryBookingRepo) List(_ context.Context) ([]model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}

func (r *MemoryBookingRepo) Update(_ context.Context, b model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == b.ID {
			r.bookings[i] = b
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryBookingRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// MemoryReviewRepo is the in-memory ReviewRepo variant.
type MemoryReviewRepo struct {
	mu      sync.Mutex
	reviews []model.Review
	nextID  uint64
}

func NewMemoryReviewRepo() *MemoryReviewRepo { return &MemoryReviewRepo{nextID: 1} }

func (r *MemoryReviewRepo) Create(_ context.Context, rev *model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rev.ID = r.nextID
	r.nextID++
	r.reviews = append(r.reviews, *rev)
	return nil
}

func (r *MemoryReviewRepo) Get(_ context.Context, id uint64) (model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rev := range r.reviews {
		if rev.ID == id {
			return rev, nil
		}
	}
	return model.Review{}, ErrNotFound
}

func (r *MemoryReviewRepo) ListByRoom(_ context.Context, roomID uint64) ([]model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Review{}
	for _, rev := range r.reviews {
		if rev.RoomID == roomID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (r *MemoryReviewRepo) Update(_ context.Context, rev model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reviews {
		if r.reviews[i].ID == rev.ID {
			r.reviews[i] = rev
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryReviewRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reviews {
		if r.reviews[i].ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
