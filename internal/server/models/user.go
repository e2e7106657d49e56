package models

import "time"

// User is an account that can sign in. PasswordHash is an argon2id PHC string.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
