package models

import "time"

// User is a dashboard operator. The id keys the operator's dashboard session.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
