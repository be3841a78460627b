package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartmeet/room-booking/internal/model"
	"github.com/smartmeet/room-booking/internal/queue"
	"github.com/smartmeet/room-booking/internal/repository"
)

// BookingHandler bundles dependencies for the bookings endpoints. The
// publisher is invoked inline after a booking is stored; its failures are
// logged and swallowed so messaging can never fail a booking request.
type BookingHandler struct {
	Bookings  repository.BookingRepo
	Publisher queue.Publisher
}

func NewBookingHandler(bookings repository.BookingRepo, publisher queue.Publisher) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Publisher: publisher}
}

// ----- DTOs -----

type bookingCreateReq struct {
	RoomID    uint64  `json:"room_id"`
	Username  string  `json:"username"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Purpose   *string `json:"purpose"`
}

type bookingUpdateReq struct {
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Purpose   *string `json:"purpose"`
}

type bookingResp struct {
	ID        uint64    `json:"id"`
	RoomID    uint64    `json:"room_id"`
	Username  string    `json:"username"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Purpose   *string   `json:"purpose"`
	Status    string    `json:"status"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:        b.ID,
		RoomID:    b.RoomID,
		Username:  b.Username,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Purpose:   b.Purpose,
		Status:    b.Status,
	}
}

// CreateBooking validates the time interval, stores the booking as
// confirmed, then publishes a booking_created event best-effort: exactly
// one message per successful creation when the broker is reachable, zero
// when it is not, and a 201 response either way.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req bookingCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.RoomID == 0 || req.Username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id/username required"})
	}
	start, err := parseTimestamp(req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time"})
	}
	end, err := parseTimestamp(req.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time"})
	}
	if !end.After(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be after start_time"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	booking := model.Booking{
		RoomID:    req.RoomID,
		Username:  req.Username,
		StartTime: start,
		EndTime:   end,
		Purpose:   req.Purpose,
		Status:    model.BookingStatusConfirmed,
	}
	if err := h.Bookings.Create(ctx, &booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	// Best-effort notification: the booking is already committed, so a
	// broker outage only costs the event, never the response.
	if err := h.Publisher.PublishBookingCreated(ctx, queue.NewBookingCreatedEvent(booking)); err != nil {
		log.Printf("bookings: publish booking_created failed for booking %d: %v", booking.ID, err)
	}

	return c.JSON(http.StatusCreated, toBookingResp(booking))
}

// ListBookings returns all bookings.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	bookings, err := h.Bookings.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, out)
}

// GetBooking returns a single booking by id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Bookings.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// UpdateBooking changes the time interval and/or purpose of a booking.
// The resulting interval is validated as a whole before anything is
// persisted, so a rejected update leaves the booking untouched.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req bookingUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Bookings.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if req.StartTime != nil {
		start, err := parseTimestamp(*req.StartTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time"})
		}
		b.StartTime = start
	}
	if req.EndTime != nil {
		end, err := parseTimestamp(*req.EndTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time"})
		}
		b.EndTime = end
	}
	if !b.EndTime.After(b.StartTime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be after start_time"})
	}
	if req.Purpose != nil {
		b.Purpose = req.Purpose
	}

	if err := h.Bookings.Update(ctx, b); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// DeleteBooking cancels a booking.
func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete booking failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Booking cancelled successfully",
		"booking_id": id,
	})
}
