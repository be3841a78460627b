package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smartmeet/room-booking/internal/auth"
	"github.com/smartmeet/room-booking/internal/model"
	"github.com/smartmeet/room-booking/internal/repository"
	"github.com/smartmeet/room-booking/internal/utils"
)

// UserHandler bundles dependencies for the users endpoints: the user
// store, the token issuer selected by AUTH_MODE, and the bcrypt cost used
// when hashing new passwords.
type UserHandler struct {
	Users      repository.UserRepo
	Issuer     auth.Issuer
	BcryptCost int
}

func NewUserHandler(users repository.UserRepo, issuer auth.Issuer, bcryptCost int) *UserHandler {
	return &UserHandler{Users: users, Issuer: issuer, BcryptCost: bcryptCost}
}

// ----- DTOs -----

type userCreateReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResp struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
}

// CreateUser registers a new account. Registering an already-taken
// username is not an error: the existing record is returned unchanged, so
// repeated sign-ups are idempotent.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req userCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if !auth.ValidUsername(req.Username) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username must be 3-30 chars of letters, digits or underscore"})
	}
	if len(req.Password) < 6 || len(req.Password) > 128 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be 6-128 chars"})
	}

	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	user := model.User{Username: req.Username, PasswordHash: hash, Role: auth.DefaultRole}
	if err := h.Users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			existing, gerr := h.Users.GetByUsername(ctx, req.Username)
			if gerr != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
			}
			return c.JSON(http.StatusCreated, userResp{ID: existing.ID, Username: existing.Username, Role: existing.Role})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, userResp{ID: user.ID, Username: user.Username, Role: user.Role})
}

// ListUsers returns every registered user without password material.
func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]userResp, 0, len(users))
	for _, u := range users {
		out = append(out, userResp{ID: u.ID, Username: u.Username, Role: u.Role})
	}
	return c.JSON(http.StatusOK, out)
}

// Login verifies credentials and returns a bearer token from the
// configured issuer.
func (h *UserHandler) Login(c echo.Context) error {
	var req userCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := h.Issuer.Issue(u.Username, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, tokenResp{AccessToken: token, TokenType: "bearer", Role: u.Role})
}
