package router // package router defines how HTTP routes are registered for each service

import (
	"github.com/labstack/echo/v4"

	"github.com/smartmeet/room-booking/internal/auth"
	"github.com/smartmeet/room-booking/internal/handler"
	"github.com/smartmeet/room-booking/internal/middleware"
)

// RegisterCommon registers the routes every service exposes. At the
// moment that is only the health check used by load balancers and
// monitoring systems.
func RegisterCommon(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterRooms registers the rooms-service endpoints.
func RegisterRooms(e *echo.Echo, h *handler.RoomHandler) {
	e.POST("/api/rooms", h.CreateRoom)
	e.GET("/api/rooms", h.ListRooms)
}

// RegisterUsers registers the users-service endpoints, including login,
// which issues the bearer tokens consumed by the reviews service.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler) {
	e.POST("/api/users", h.CreateUser)
	e.GET("/api/users", h.ListUsers)
	e.POST("/api/users/login", h.Login)
}

// RegisterBookings registers the bookings-service endpoints.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler) {
	e.POST("/api/bookings", h.CreateBooking)
	e.GET("/api/bookings", h.ListBookings)
	e.GET("/api/bookings/:id", h.GetBooking)
	e.PUT("/api/bookings/:id", h.UpdateBooking)
	e.DELETE("/api/bookings/:id", h.DeleteBooking)
}

// RegisterReviews registers the reviews-service endpoints. Listing is
// open so anyone can read reviews; create, update and delete require a
// bearer token accepted by the given verifier.
func RegisterReviews(e *echo.Echo, h *handler.ReviewHandler, v auth.Verifier) {
	e.GET("/api/rooms/:id/reviews", h.ListRoomReviews)

	g := e.Group("/api", middleware.BearerAuth(v))
	g.POST("/rooms/:id/reviews", h.CreateReview)
	g.PUT("/reviews/:id", h.UpdateReview)
	g.DELETE("/reviews/:id", h.DeleteReview)
}
