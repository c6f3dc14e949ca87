package models

import "time"

// BadgeFirstReview is awarded for the first review a user ever submits.
const BadgeFirstReview = "first_review"

type Badge struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Title       string  `json:"title" db:"title"`
	Description string  `json:"description" db:"description"`
	Icon        *string `json:"icon,omitempty" db:"icon"`
	Color       *string `json:"color,omitempty" db:"color"`
	IsActive    bool    `json:"isActive" db:"is_active"`
}

type UserBadge struct {
	ID       int64     `json:"id" db:"id"`
	UserID   int64     `json:"userId" db:"user_id"`
	BadgeID  int64     `json:"badgeId" db:"badge_id"`
	EarnedAt time.Time `json:"earnedAt" db:"earned_at"`
}

// BadgeStatus is a badge as seen by one user.
type BadgeStatus struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Earned      bool    `json:"earned"`
	EarnedAt    *string `json:"earnedAt"`
}

// BadgeWithEarned is the row shape behind BadgeStatus.
type BadgeWithEarned struct {
	Badge
	EarnedAt *time.Time `db:"earned_at"`
}
