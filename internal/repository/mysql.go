package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/smartmeet/room-booking/internal/model"
)

// MySQL-backed repositories.  Queries use the standard library driver
// interface; the go-sql-driver/mysql driver is registered by the database
// package.  Schema (one table per service):
//
//	rooms(id, name, location, capacity)
//	users(id, username, password_hash, role)
//	bookings(id, room_id, username, start_time, end_time, purpose, status)
//	reviews(id, room_id, username, rating, comment, booking_id, created_at)

// MySQLRoomRepo is the MySQL RoomRepo variant.
type MySQLRoomRepo struct{ DB *sql.DB }

func NewMySQLRoomRepo(db *sql.DB) *MySQLRoomRepo { return &MySQLRoomRepo{DB: db} }

func (r *MySQLRoomRepo) Create(ctx context.Context, room *model.Room) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO rooms (name, location, capacity) VALUES (?,?,?)",
		room.Name, room.Location, room.Capacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	return nil
}

func (r *MySQLRoomRepo) List(ctx context.Context) ([]model.Room, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, location, capacity FROM rooms ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Room{}
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Location, &room.Capacity); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

// MySQLUserRepo is the MySQL UserRepo variant.
type MySQLUserRepo struct{ DB *sql.DB }

func NewMySQLUserRepo(db *sql.DB) *MySQLUserRepo { return &MySQLUserRepo{DB: db} }

func (r *MySQLUserRepo) Create(ctx context.Context, u *model.User) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, role) VALUES (?,?,?)",
		u.Username, u.PasswordHash, u.Role)
	if err != nil {
		// 1062 = duplicate entry for the unique username index
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrUsernameExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

func (r *MySQLUserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

func (r *MySQLUserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, username, password_hash, role FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// MySQLBookingRepo is the MySQL BookingRepo variant.
type MySQLBookingRepo struct{ DB *sql.DB }

func NewMySQLBookingRepo(db *sql.DB) *MySQLBookingRepo { return &MySQLBookingRepo{DB: db} }

func (r *MySQLBookingRepo) Create(ctx context.Context, b *model.Booking) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO bookings (room_id, username, start_time, end_time, purpose, status) VALUES (?,?,?,?,?,?)",
		b.RoomID, b.Username, b.StartTime, b.EndTime, b.Purpose, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

func (r *MySQLBookingRepo) Get(ctx context.Context, id uint64) (model.Booking, error) {
	var b model.Booking
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, room_id, username, start_time, end_time, purpose, status FROM bookings WHERE id=? LIMIT 1",
		id).Scan(&b.ID, &b.RoomID, &b.Username, &b.StartTime, &b.EndTime, &b.Purpose, &b.Status)
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

func (r *MySQLBookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, room_id, username, start_time, end_time, purpose, status FROM bookings ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.RoomID, &b.Username, &b.StartTime, &b.EndTime, &b.Purpose, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *MySQLBookingRepo) Update(ctx context.Context, b model.Booking) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET start_time=?, end_time=?, purpose=? WHERE id=?",
		b.StartTime, b.EndTime, b.Purpose, b.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *MySQLBookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM bookings WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// MySQLReviewRepo is the MySQL ReviewRepo variant.
type MySQLReviewRepo struct{ DB *sql.DB }

func NewMySQLReviewRepo(db *sql.DB) *MySQLReviewRepo { return &MySQLReviewRepo{DB: db} }

func (r *MySQLReviewRepo) Create(ctx context.Context, rev *model.Review) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (room_id, username, rating, comment, booking_id, created_at) VALUES (?,?,?,?,?,?)",
		rev.RoomID, rev.Username, rev.Rating, rev.Comment, rev.BookingID, rev.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	return nil
}

func (r *MySQLReviewRepo) Get(ctx context.Context, id uint64) (model.Review, error) {
	var rev model.Review
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, room_id, username, rating, comment, booking_id, created_at FROM reviews WHERE id=? LIMIT 1",
		id).Scan(&rev.ID, &rev.RoomID, &rev.Username, &rev.Rating, &rev.Comment, &rev.BookingID, &rev.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Review{}, ErrNotFound
	}
	return rev, err
}

func (r *MySQLReviewRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, room_id, username, rating, comment, booking_id, created_at FROM reviews WHERE room_id=? ORDER BY id",
		roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Review{}
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.RoomID, &rev.Username, &rev.Rating, &rev.Comment, &rev.BookingID, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *MySQLReviewRepo) Update(ctx context.Context, rev model.Review) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE reviews SET rating=?, comment=? WHERE id=?",
		rev.Rating, rev.Comment, rev.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *MySQLReviewRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// requireAffected maps "no rows touched" onto ErrNotFound so the MySQL and
// in-memory variants report missing records identically.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
