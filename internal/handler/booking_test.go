package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartmeet/room-booking/internal/model"
	"github.com/smartmeet/room-booking/internal/queue"
	"github.com/smartmeet/room-booking/internal/repository"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishBookingCreated(ctx context.Context, event queue.BookingCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newBookingTest() (*BookingHandler, *repository.MemoryBookingRepo, *mockPublisher) {
	repo := repository.NewMemoryBookingRepo()
	pub := &mockPublisher{}
	return NewBookingHandler(repo, pub), repo, pub
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func TestCreateBookingStoresAndPublishes(t *testing.T) {
	h, repo, pub := newBookingTest()
	pub.On("PublishBookingCreated", mock.Anything, mock.Anything).Return(nil).Once()

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/bookings", `{
		"room_id": 3,
		"username": "alice",
		"start_time": "2025-01-01T10:00:00Z",
		"end_time": "2025-01-01T11:00:00Z",
		"purpose": "planning"
	}`)
	c := e.NewContext(req, rec)

	require.NoError(t, h.CreateBooking(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.ID)
	assert.Equal(t, uint64(3), resp.RoomID)
	assert.Equal(t, "confirmed", resp.Status)
	require.NotNil(t, resp.Purpose)
	assert.Equal(t, "planning", *resp.Purpose)

	stored, err := repo.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)

	pub.AssertExpectations(t)
	ev := pub.Calls[0].Arguments.Get(1).(queue.BookingCreatedEvent)
	assert.Equal(t, queue.BookingCreatedSchemaVersion, ev.SchemaVersion)
	assert.Equal(t, resp.ID, ev.ID)
}

func TestCreateBookingSucceedsWhenPublishFails(t *testing.T) {
	h, repo, pub := newBookingTest()
	pub.On("PublishBookingCreated", mock.Anything, mock.Anything).
		Return(errors.New("broker down")).Once()

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/bookings", `{
		"room_id": 1,
		"username": "bob",
		"start_time": "2025-01-01T10:00:00Z",
		"end_time": "2025-01-01T11:00:00Z"
	}`)
	c := e.NewContext(req, rec)

	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusCreated, rec.Code, "broker failure must not fail the request")

	bookings, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	pub.AssertNumberOfCalls(t, "PublishBookingCreated", 1)
}

func TestCreateBookingRejectsInvertedInterval(t *testing.T) {
	h, repo, pub := newBookingTest()

	e := echo.New()
	for _, body := range []string{
		`{"room_id":1,"username":"bob","start_time":"2025-01-01T11:00:00Z","end_time":"2025-01-01T10:00:00Z"}`,
		`{"room_id":1,"username":"bob","start_time":"2025-01-01T10:00:00Z","end_time":"2025-01-01T10:00:00Z"}`,
	} {
		req, rec := jsonRequest(http.MethodPost, "/api/bookings", body)
		c := e.NewContext(req, rec)
		require.NoError(t, h.CreateBooking(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "end_time must be after start_time")
	}

	bookings, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bookings, "rejected bookings must not be stored")
	pub.AssertNumberOfCalls(t, "PublishBookingCreated", 0)
}

func TestCreateBookingAcceptsZonelessTimestamps(t *testing.T) {
	h, _, pub := newBookingTest()
	pub.On("PublishBookingCreated", mock.Anything, mock.Anything).Return(nil).Once()

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/bookings", `{
		"room_id": 1,
		"username": "bob",
		"start_time": "2025-01-01T10:00:00",
		"end_time": "2025-01-01T11:00:00"
	}`)
	c := e.NewContext(req, rec)

	require.NoError(t, h.CreateBooking(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), resp.StartTime)
}

func TestGetBookingNotFound(t *testing.T) {
	h, _, _ := newBookingTest()

	e := echo.New()
	req, rec := jsonRequest(http.MethodGet, "/api/bookings/99", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, h.GetBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateBookingValidatesFinalInterval(t *testing.T) {
	h, repo, pub := newBookingTest()

	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	booking := model.Booking{
		RoomID:    1,
		Username:  "bob",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    model.BookingStatusConfirmed,
	}
	require.NoError(t, repo.Create(context.Background(), &booking))

	e := echo.New()

	// Moving only end_time before the stored start must be rejected.
	req, rec := jsonRequest(http.MethodPut, "/api/bookings/1", `{"end_time":"2025-01-01T09:00:00Z"}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	unchanged, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, start.Add(time.Hour), unchanged.EndTime, "rejected update must leave the booking untouched")

	// A consistent update goes through, purpose included.
	req, rec = jsonRequest(http.MethodPut, "/api/bookings/1", `{"end_time":"2025-01-01T12:00:00Z","purpose":"retro"}`)
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateBooking(c))
	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, start.Add(2*time.Hour), updated.EndTime)
	require.NotNil(t, updated.Purpose)
	assert.Equal(t, "retro", *updated.Purpose)

	// Update never re-publishes.
	pub.AssertNumberOfCalls(t, "PublishBookingCreated", 0)
}

func TestDeleteBooking(t *testing.T) {
	h, repo, _ := newBookingTest()

	booking := model.Booking{RoomID: 1, Username: "bob", Status: model.BookingStatusConfirmed}
	require.NoError(t, repo.Create(context.Background(), &booking))

	e := echo.New()
	req, rec := jsonRequest(http.MethodDelete, "/api/bookings/1", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.DeleteBooking(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booking cancelled successfully")

	_, err := repo.Get(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Deleting again is a 404.
	req, rec = jsonRequest(http.MethodDelete, "/api/bookings/1", "")
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.DeleteBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
