package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartmeet/room-booking/internal/model"
	"github.com/smartmeet/room-booking/internal/repository"
)

// reviewContext builds a context as the BearerAuth middleware would leave
// it: identity already injected.
func reviewContext(e *echo.Echo, method, target, body, asUser string) (echo.Context, *httptest.ResponseRecorder) {
	req, rec := jsonRequest(method, target, body)
	c := e.NewContext(req, rec)
	if asUser != "" {
		c.Set("username", asUser)
		c.Set("role", "regular")
	}
	return c, rec
}

func TestCreateReview(t *testing.T) {
	repo := repository.NewMemoryReviewRepo()
	h := NewReviewHandler(repo)
	e := echo.New()

	c, rec := reviewContext(e, http.MethodPost, "/api/rooms/3/reviews",
		`{"username":"alice","rating":5,"comment":"  great projector  ","booking_id":7}`, "alice")
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, h.CreateReview(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp reviewResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.ReviewID)
	assert.Equal(t, uint64(3), resp.RoomID)
	assert.Equal(t, 5, resp.Rating)
	require.NotNil(t, resp.Comment)
	assert.Equal(t, "great projector", *resp.Comment, "comment is trimmed")
	assert.False(t, resp.CreatedAt.IsZero())
}

func TestCreateReviewForbidsImpersonation(t *testing.T) {
	repo := repository.NewMemoryReviewRepo()
	h := NewReviewHandler(repo)
	e := echo.New()

	c, rec := reviewContext(e, http.MethodPost, "/api/rooms/3/reviews",
		`{"username":"bob","rating":4,"booking_id":7}`, "alice")
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, h.CreateReview(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	reviews, err := repo.ListByRoom(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestCreateReviewValidation(t *testing.T) {
	h := NewReviewHandler(repository.NewMemoryReviewRepo())
	e := echo.New()

	cases := []struct {
		name string
		body string
	}{
		{"rating too low", `{"username":"alice","rating":0,"booking_id":7}`},
		{"rating too high", `{"username":"alice","rating":6,"booking_id":7}`},
		{"missing booking", `{"username":"alice","rating":4}`},
		{"bad username", `{"username":"a b","rating":4,"booking_id":7}`},
		{"sql comment", `{"username":"alice","rating":4,"booking_id":7,"comment":"nice room -- drop"}`},
		{"semicolon", `{"username":"alice","rating":4,"booking_id":7,"comment":"a;b"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := reviewContext(e, http.MethodPost, "/api/rooms/3/reviews", tc.body, "alice")
			c.SetParamNames("id")
			c.SetParamValues("3")
			require.NoError(t, h.CreateReview(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListRoomReviewsIsOpen(t *testing.T) {
	repo := repository.NewMemoryReviewRepo()
	h := NewReviewHandler(repo)
	e := echo.New()

	rev := model.Review{RoomID: 3, Username: "alice", Rating: 5, BookingID: 7, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(context.Background(), &rev))

	// No identity in context: listing works anyway.
	c, rec := reviewContext(e, http.MethodGet, "/api/rooms/3/reviews", "", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, h.ListRoomReviews(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []reviewResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "alice", reviews[0].Username)
}

func TestUpdateReviewAuthorOnly(t *testing.T) {
	repo := repository.NewMemoryReviewRepo()
	h := NewReviewHandler(repo)
	e := echo.New()

	rev := model.Review{RoomID: 3, Username: "alice", Rating: 2, BookingID: 7, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(context.Background(), &rev))

	// Someone else cannot touch it.
	c, rec := reviewContext(e, http.MethodPut, "/api/reviews/1", `{"rating":5}`, "mallory")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateReview(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The author can.
	c, rec = reviewContext(e, http.MethodPut, "/api/reviews/1", `{"rating":5,"comment":"fixed chairs"}`, "alice")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateReview(c))
	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	require.NotNil(t, updated.Comment)
	assert.Equal(t, "fixed chairs", *updated.Comment)
}

func TestDeleteReviewAuthorOnly(t *testing.T) {
	repo := repository.NewMemoryReviewRepo()
	h := NewReviewHandler(repo)
	e := echo.New()

	rev := model.Review{RoomID: 3, Username: "alice", Rating: 4, BookingID: 7, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(context.Background(), &rev))

	c, rec := reviewContext(e, http.MethodDelete, "/api/reviews/1", "", "mallory")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.DeleteReview(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = reviewContext(e, http.MethodDelete, "/api/reviews/1", "", "alice")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.DeleteReview(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Review deleted successfully")

	_, err := repo.Get(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateReviewNotFound(t *testing.T) {
	h := NewReviewHandler(repository.NewMemoryReviewRepo())
	e := echo.New()

	c, rec := reviewContext(e, http.MethodPut, "/api/reviews/42", `{"rating":3}`, "alice")
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.UpdateReview(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSanitizeComment(t *testing.T) {
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	longStr := string(long)

	_, err := sanitizeComment(&longStr)
	assert.Error(t, err, "501 characters exceed the cap")

	ok := "a perfectly fine comment"
	got, err := sanitizeComment(&ok)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ok, *got)

	got, err = sanitizeComment(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}
