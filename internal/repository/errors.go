// Package repository defines the storage interfaces used by the services
// together with sentinel error values reused across implementations. These
// sentinels allow higher layers such as handlers to distinguish between
// failure scenarios: ErrNotFound maps to HTTP 404, while
// ErrUsernameExists lets the users service return the already-registered
// record instead of failing the request.
package repository

import "errors"

// ErrNotFound is returned when a record with the requested identifier does
// not exist. Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when creating a user whose username is
// already taken.
var ErrUsernameExists = errors.New("username already exists")
