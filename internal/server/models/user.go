package models

import "time"

type User struct {
	ID           string
	UserName     string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
