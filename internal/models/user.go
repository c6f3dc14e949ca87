package models

import "time"

type User struct {
	ID            int64      `json:"id" db:"id"`
	Auth0ID       string     `json:"auth0Id" db:"auth0_id"`
	Email         string     `json:"email" db:"email"`
	Username      string     `json:"username" db:"username"`
	Locale        string     `json:"locale" db:"locale"`
	XP            int        `json:"xp" db:"xp"`
	CurrentStreak int        `json:"currentStreak" db:"current_streak"`
	LongestStreak int        `json:"longestStreak" db:"longest_streak"`
	LastActiveOn  *time.Time `json:"lastActiveOn" db:"last_active_on"`
	IsAdmin       bool       `json:"isAdmin" db:"is_admin"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt     *time.Time `json:"-" db:"deleted_at"`
}

// Identity is what the auth layer knows about the caller.
type Identity struct {
	Subject string
	Email   string
}

// UserUpsert carries the fields written when a user logs in or registers.
type UserUpsert struct {
	Auth0ID  string
	Email    string
	Username string
	Locale   string
}

// GamificationUpdate is the xp/streak state written after a review.
type GamificationUpdate struct {
	UserID        int64
	XP            int
	CurrentStreak int
	LongestStreak int
	LastActiveOn  time.Time
}
