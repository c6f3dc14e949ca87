package models

import "time"

// ReviewResult is the outcome of a single flashcard answer.
type ReviewResult string

const (
	ResultCorrect   ReviewResult = "correct"
	ResultIncorrect ReviewResult = "incorrect"
)

// Valid reports whether r is one of the known results.
func (r ReviewResult) Valid() bool {
	return r == ResultCorrect || r == ResultIncorrect
}

// FlashcardReview is one answer submission. The SRS columns are part of the
// stored schema but nothing computes them yet.
type FlashcardReview struct {
	ID             int64        `json:"id" db:"id"`
	UserID         int64        `json:"userId" db:"user_id"`
	SpeciesID      int64        `json:"speciesId" db:"species_id"`
	Result         ReviewResult `json:"result" db:"result"`
	ReviewedAt     time.Time    `json:"reviewedAt" db:"reviewed_at"`
	ResponseTimeMS *int         `json:"responseTimeMs" db:"response_time_ms"`
	Difficulty     *int         `json:"difficulty" db:"difficulty"`
	IntervalDays   *int         `json:"interval" db:"interval_days"`
	Repetitions    *int         `json:"repetitions" db:"repetitions"`
	EaseFactor     *float64     `json:"easeFactor" db:"ease_factor"`
	NextReviewDate *time.Time   `json:"nextReviewDate" db:"next_review_date"`
}

// Progress is the per (user, species) counters row.
type Progress struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	SpeciesID    int64     `json:"speciesId" db:"species_id"`
	TimesSeen    int       `json:"timesSeen" db:"times_seen"`
	TimesCorrect int       `json:"timesCorrect" db:"times_correct"`
	Accuracy     float64   `json:"accuracy" db:"accuracy"`
	MasteryLevel int       `json:"masteryLevel" db:"mastery_level"`
	IsMastered   bool      `json:"isMastered" db:"is_mastered"`
	LastSeen     time.Time `json:"lastSeen" db:"last_seen"`
	Version      int64     `json:"-" db:"version"`
}

// ProgressSummary is the aggregate shown on the progress page.
// Accuracy is an integer percentage.
type ProgressSummary struct {
	TotalSpecies    int `json:"totalSpecies"`
	MasteredSpecies int `json:"masteredSpecies"`
	Accuracy        int `json:"accuracy"`
}

// ProgressTotals are the raw sums behind a ProgressSummary.
type ProgressTotals struct {
	TotalSpecies    int `db:"total_species"`
	MasteredSpecies int `db:"mastered_species"`
	TimesSeen       int `db:"times_seen"`
	TimesCorrect    int `db:"times_correct"`
}

// ReviewOutcome is returned to the client after a review submission.
type ReviewOutcome struct {
	Success       bool    `json:"success"`
	BadgesAwarded []Badge `json:"badgesAwarded"`
}

type FlashcardSession struct {
	ID              string     `json:"id" db:"id"`
	UserID          int64      `json:"userId" db:"user_id"`
	SpeciesIDs      []int64    `json:"speciesIds" db:"-"`
	StartedAt       time.Time  `json:"startedAt" db:"started_at"`
	CompletedAt     *time.Time `json:"completedAt" db:"completed_at"`
	TotalCards      int        `json:"totalCards" db:"total_cards"`
	CorrectCount    int        `json:"correctCount" db:"correct_count"`
	IncorrectCount  int        `json:"incorrectCount" db:"incorrect_count"`
	Accuracy        float64    `json:"accuracy" db:"accuracy"`
	DurationSeconds int        `json:"durationSeconds" db:"duration_seconds"`
}

// Completed reports whether the session has been closed.
func (s FlashcardSession) Completed() bool {
	return s.CompletedAt != nil
}

// ReviewCounts aggregates review results over a window.
type ReviewCounts struct {
	Correct   int `db:"correct"`
	Incorrect int `db:"incorrect"`
}
