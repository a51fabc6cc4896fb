package user

import "time"

type User struct {
	ID           int
	FullName     string
	Identifier   string
	PasswordHash string
	IsActive     bool
	ExpiresAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccessWindow is a recurring weekly time range during which access is
// permitted. Times of day are "HH:MM:SS" strings; DayOfWeek is 0-6.
type AccessWindow struct {
	ID        int
	UserID    int
	DayOfWeek int
	StartTime string
	EndTime   string
}
