// Package models holds the client-side view of API resources.
package models

// User is the identity returned by GET /auth/user.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
