package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartmeet/room-booking/internal/auth"
	"github.com/smartmeet/room-booking/internal/model"
	"github.com/smartmeet/room-booking/internal/repository"
)

// ReviewHandler bundles dependencies for the reviews endpoints. Create,
// update and delete run behind the BearerAuth middleware; listing is open
// so anyone can read reviews.
type ReviewHandler struct {
	Reviews repository.ReviewRepo
}

func NewReviewHandler(reviews repository.ReviewRepo) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

// ----- DTOs -----

type reviewCreateReq struct {
	Username  string  `json:"username"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
	BookingID uint64  `json:"booking_id"`
}

type reviewUpdateReq struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type reviewResp struct {
	ReviewID  uint64    `json:"review_id"`
	RoomID    uint64    `json:"room_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	BookingID uint64    `json:"booking_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toReviewResp(r model.Review) reviewResp {
	return reviewResp{
		ReviewID:  r.ID,
		RoomID:    r.RoomID,
		Username:  r.Username,
		Rating:    r.Rating,
		Comment:   r.Comment,
		BookingID: r.BookingID,
		CreatedAt: r.CreatedAt,
	}
}

// dangerousTokens are substrings rejected inside review comments. Queries
// are parameterized regardless; this only filters obviously hostile text.
var dangerousTokens = []string{
	"--", ";--", ";", "/*", "*/", "@@",
	" xp_", " drop ", " delete ", " insert ", " update ", " alter ", " create ",
}

// sanitizeComment trims the comment, enforces the 500 character cap and
// rejects suspicious SQL-ish sequences.
func sanitizeComment(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	cleaned := strings.TrimSpace(*raw)
	if len(cleaned) > 500 {
		return nil, errors.New("comment too long (max 500 chars)")
	}
	lowered := strings.ToLower(cleaned)
	for _, tok := range dangerousTokens {
		if strings.Contains(lowered, tok) {
			return nil, errors.New("comment contains disallowed characters or patterns")
		}
	}
	return &cleaned, nil
}

// CreateReview creates a review for a room. The authenticated username
// must match the payload username: users review as themselves only.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	roomID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req reviewCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !auth.ValidUsername(req.Username) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username must be 3-30 chars of letters, digits or underscore"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	if req.BookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_id must be positive"})
	}
	comment, err := sanitizeComment(req.Comment)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.Username != currentUsername(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only create reviews as yourself"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	review := model.Review{
		RoomID:    roomID,
		Username:  req.Username,
		Rating:    req.Rating,
		Comment:   comment,
		BookingID: req.BookingID,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Reviews.Create(ctx, &review); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	return c.JSON(http.StatusCreated, toReviewResp(review))
}

// ListRoomReviews returns every review of one room. Open endpoint.
func (h *ReviewHandler) ListRoomReviews(c echo.Context) error {
	roomID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	reviews, err := h.Reviews.ListByRoom(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]reviewResp, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResp(r))
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateReview changes the rating and/or comment of a review. Author only.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	var req reviewUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	review, err := h.Reviews.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if review.Username != currentUsername(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only update your own reviews"})
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		comment, err := sanitizeComment(req.Comment)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		review.Comment = comment
	}

	if err := h.Reviews.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update review failed"})
	}
	return c.JSON(http.StatusOK, toReviewResp(review))
}

// DeleteReview removes a review. Author only.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	review, err := h.Reviews.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if review.Username != currentUsername(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only delete your own reviews"})
	}

	if err := h.Reviews.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete review failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Review deleted successfully",
		"review_id": id,
	})
}
