package model

// User represents an application user record as stored in the `users`
// table.  PasswordHash is never serialized; handlers define response
// types exposing only id, username and role.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique username (3–30 chars, letters/digits/underscore).
//	PasswordHash – bcrypt hashed password.
//	Role         – role name; new registrations always get "regular".
type User struct {
	ID           uint64
	Username     string
	PasswordHash string
	Role         string
}
