package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/birdguide/internal/errors"
	"github.com/vytor/birdguide/internal/gamification"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/metrics"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/repository"
)

// SessionSpeciesLimit is the size of the flashcard session candidate set.
const SessionSpeciesLimit = 10

// FlashcardService handles the flashcard review flow, sessions and progress
type FlashcardService interface {
	ListSessionSpecies(ctx context.Context) ([]models.SpeciesCard, error)
	SubmitReview(ctx context.Context, userID, speciesID int64, result models.ReviewResult) (*models.ReviewOutcome, error)
	StartSession(ctx context.Context, userID int64, speciesIDs []int64) (string, error)
	CompleteSession(ctx context.Context, userID int64, sessionID string) (*models.FlashcardSession, error)
	ExpireStaleSessions(ctx context.Context, olderThan time.Duration) (int, error)
	GetProgressSummary(ctx context.Context, userID int64) (*models.ProgressSummary, error)
	ListBadges(ctx context.Context, userID int64) ([]models.BadgeStatus, error)
}

type flashcardService struct {
	txm     repository.TxManager
	repos   repository.Repositories
	metrics *metrics.Metrics
	now     func() time.Time
}

// FlashcardOption configures the flashcard service.
type FlashcardOption func(*flashcardService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) FlashcardOption {
	return func(s *flashcardService) {
		s.now = now
	}
}

// NewFlashcardService creates a new FlashcardService. repos serve reads
// outside a transaction; every write goes through txm.
func NewFlashcardService(txm repository.TxManager, repos repository.Repositories, m *metrics.Metrics, opts ...FlashcardOption) FlashcardService {
	s := &flashcardService{
		txm:     txm,
		repos:   repos,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *flashcardService) ListSessionSpecies(ctx context.Context) ([]models.SpeciesCard, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing session species")

	cards, err := s.repos.Species.ListCards(ctx, SessionSpeciesLimit)
	if err != nil {
		log.Error("failed to list session species: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if cards == nil {
		cards = []models.SpeciesCard{}
	}
	return cards, nil
}

func (s *flashcardService) SubmitReview(ctx context.Context, userID, speciesID int64, result models.ReviewResult) (*models.ReviewOutcome, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting review: user_id=%d, species_id=%d, result=%s", userID, speciesID, result)

	if !result.Valid() {
		return nil, errors.NewValidationError("result", "must be correct or incorrect")
	}
	if speciesID <= 0 {
		return nil, errors.NewValidationError("speciesId", "must be a positive integer")
	}

	var awarded []models.Badge
	err := s.txm.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		now := s.now()
		events := NewEventLog(repos.Events, s.now)

		if _, err := repos.Reviews.Insert(ctx, models.FlashcardReview{
			UserID:     userID,
			SpeciesID:  speciesID,
			Result:     result,
			ReviewedAt: now,
		}); err != nil {
			log.Error("failed to record review: %v", err)
			return errors.NewInternalError(err)
		}

		change, err := NewProgressTracker(repos.Progress, s.metrics).Update(ctx, userID, speciesID, result, now)
		if err != nil {
			return err
		}

		user, err := repos.Users.Get(ctx, userID)
		if err != nil {
			log.Error("failed to load user: %v", err)
			return errors.NewInternalError(err)
		}
		if user == nil {
			return errors.NewNotFoundError("user", userID)
		}
		upd := gamification.Apply(*user, result, now)
		if err := repos.Users.UpdateGamification(ctx, upd); err != nil {
			log.Error("failed to update xp and streak: %v", err)
			return errors.NewInternalError(err)
		}

		if err := events.Log(ctx, userID, models.EventReview, reviewPayload{SpeciesID: speciesID, Result: result}); err != nil {
			return err
		}
		if err := events.Log(ctx, userID, models.EventXPGained, xpPayload{Amount: upd.XP - user.XP, Total: upd.XP}); err != nil {
			return err
		}
		if upd.CurrentStreak != user.CurrentStreak {
			if err := events.Log(ctx, userID, models.EventStreakUpdated, streakPayload{Current: upd.CurrentStreak, Longest: upd.LongestStreak}); err != nil {
				return err
			}
		}
		if change.JustMastered {
			if err := events.Log(ctx, userID, models.EventSpeciesMastered, masteredPayload{SpeciesID: speciesID}); err != nil {
				return err
			}
		}

		awarded, err = NewBadgeAwarder(repos.Reviews, repos.Badges, events, s.now).CheckAndAward(ctx, userID)
		return err
	})
	if err != nil {
		return nil, errors.As(err)
	}

	s.metrics.RecordReview(string(result))
	for _, b := range awarded {
		s.metrics.RecordBadge(b.Name)
	}
	log.Info("review recorded: user_id=%d, species_id=%d, result=%s, badges=%d", userID, speciesID, result, len(awarded))
	return &models.ReviewOutcome{Success: true, BadgesAwarded: awarded}, nil
}

func (s *flashcardService) StartSession(ctx context.Context, userID int64, speciesIDs []int64) (string, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting session: user_id=%d, species=%d", userID, len(speciesIDs))

	if len(speciesIDs) == 0 {
		return "", errors.NewValidationError("speciesIds", "must contain at least one species")
	}
	for _, id := range speciesIDs {
		if id <= 0 {
			return "", errors.NewValidationError("speciesIds", "must contain positive integers")
		}
	}

	session := models.FlashcardSession{
		ID:         uuid.NewString(),
		UserID:     userID,
		SpeciesIDs: speciesIDs,
		StartedAt:  s.now(),
		TotalCards: len(speciesIDs),
	}
	err := s.txm.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Sessions.Insert(ctx, session); err != nil {
			log.Error("failed to create session: %v", err)
			return errors.NewInternalError(err)
		}
		return NewEventLog(repos.Events, s.now).Log(ctx, userID, models.EventSessionStarted,
			sessionStartedPayload{SessionID: session.ID, SpeciesIDs: speciesIDs})
	})
	if err != nil {
		return "", errors.As(err)
	}

	s.metrics.RecordSessionStarted()
	log.Info("session started: id=%s, user_id=%d", session.ID, userID)
	return session.ID, nil
}

func (s *flashcardService) CompleteSession(ctx context.Context, userID int64, sessionID string) (*models.FlashcardSession, error) {
	log := logger.FromContext(ctx)
	log.Debug("completing session: id=%s, user_id=%d", sessionID, userID)

	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, errors.NewValidationError("sessionId", "invalid session id")
	}

	var out *models.FlashcardSession
	var closed bool
	err := s.txm.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		session, err := repos.Sessions.Get(ctx, sessionID)
		if err != nil {
			log.Error("failed to load session: %v", err)
			return errors.NewInternalError(err)
		}
		if session == nil || session.UserID != userID {
			return errors.NewNotFoundError("session", sessionID)
		}
		if session.Completed() {
			out = session
			return nil
		}
		out, closed, err = s.finishSession(ctx, repos, *session, false)
		return err
	})
	if err != nil {
		return nil, errors.As(err)
	}

	if closed {
		s.metrics.RecordSessionCompleted("user")
	}
	return out, nil
}

// finishSession aggregates the user's reviews of the session's species since
// it started and closes it. closed is false when another writer closed the
// session first; the stored row is returned in that case.
func (s *flashcardService) finishSession(ctx context.Context, repos repository.Repositories, session models.FlashcardSession, expired bool) (*models.FlashcardSession, bool, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	counts, err := repos.Reviews.CountResults(ctx, session.UserID, session.SpeciesIDs, session.StartedAt, now)
	if err != nil {
		log.Error("failed to aggregate session reviews: %v", err)
		return nil, false, errors.NewInternalError(err)
	}

	total := counts.Correct + counts.Incorrect
	session.CorrectCount = counts.Correct
	session.IncorrectCount = counts.Incorrect
	session.Accuracy = 0
	if total > 0 {
		session.Accuracy = float64(counts.Correct) / float64(total)
	}
	session.DurationSeconds = int(now.Sub(session.StartedAt).Seconds())
	session.CompletedAt = &now

	ok, err := repos.Sessions.Complete(ctx, session)
	if err != nil {
		log.Error("failed to complete session: %v", err)
		return nil, false, errors.NewInternalError(err)
	}
	if !ok {
		stored, err := repos.Sessions.Get(ctx, session.ID)
		if err != nil {
			return nil, false, errors.NewInternalError(err)
		}
		return stored, false, nil
	}

	if err := NewEventLog(repos.Events, s.now).Log(ctx, session.UserID, models.EventSessionCompleted, sessionCompletedPayload{
		SessionID:       session.ID,
		Correct:         session.CorrectCount,
		Incorrect:       session.IncorrectCount,
		Accuracy:        session.Accuracy,
		DurationSeconds: session.DurationSeconds,
		Expired:         expired,
	}); err != nil {
		return nil, false, err
	}
	log.Info("session completed: id=%s, correct=%d, incorrect=%d, expired=%t", session.ID, counts.Correct, counts.Incorrect, expired)
	return &session, true, nil
}

func (s *flashcardService) ExpireStaleSessions(ctx context.Context, olderThan time.Duration) (int, error) {
	log := logger.FromContext(ctx)
	cutoff := s.now().Add(-olderThan)
	log.Debug("expiring sessions started before %s", cutoff.Format(time.RFC3339))

	stale, err := s.repos.Sessions.ListOpenBefore(ctx, cutoff)
	if err != nil {
		log.Error("failed to list stale sessions: %v", err)
		return 0, errors.NewInternalError(err)
	}

	expired := 0
	for _, session := range stale {
		var closed bool
		err := s.txm.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
			var err error
			_, closed, err = s.finishSession(ctx, repos, session, true)
			return err
		})
		if err != nil {
			log.Warn("failed to expire session %s: %v", session.ID, err)
			continue
		}
		if closed {
			expired++
			s.metrics.RecordSessionCompleted("expired")
		}
	}

	if expired > 0 {
		log.Info("expired %d stale sessions", expired)
	}
	return expired, nil
}

func (s *flashcardService) GetProgressSummary(ctx context.Context, userID int64) (*models.ProgressSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting progress summary: user_id=%d", userID)

	totals, err := s.repos.Progress.Totals(ctx, userID)
	if err != nil {
		log.Error("failed to load progress totals: %v", err)
		return nil, errors.NewInternalError(err)
	}

	summary := &models.ProgressSummary{
		TotalSpecies:    totals.TotalSpecies,
		MasteredSpecies: totals.MasteredSpecies,
	}
	if totals.TimesSeen > 0 {
		summary.Accuracy = int(math.Round(100 * float64(totals.TimesCorrect) / float64(totals.TimesSeen)))
	}
	return summary, nil
}

func (s *flashcardService) ListBadges(ctx context.Context, userID int64) ([]models.BadgeStatus, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing badges: user_id=%d", userID)

	rows, err := s.repos.Badges.ListForUser(ctx, userID)
	if err != nil {
		log.Error("failed to list badges: %v", err)
		return nil, errors.NewInternalError(err)
	}

	out := make([]models.BadgeStatus, 0, len(rows))
	for _, b := range rows {
		status := models.BadgeStatus{
			ID:          b.ID,
			Name:        b.Name,
			Title:       b.Title,
			Description: b.Description,
			Earned:      b.EarnedAt != nil,
		}
		if b.EarnedAt != nil {
			ts := b.EarnedAt.UTC().Format(time.RFC3339)
			status.EarnedAt = &ts
		}
		out = append(out, status)
	}
	return out, nil
}
