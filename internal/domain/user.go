package domain

import "time"

type User struct {
	ID           int64
	Email        string // unique
	Username     string // unique
	PasswordHash string
	FullName     *string
	IsActive     bool
	IsOperator   bool
	IsAdmin      bool
	CreatedAt    time.Time
}
