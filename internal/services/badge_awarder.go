package services

import (
	"context"
	"time"

	"github.com/vytor/birdguide/internal/errors"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/repository"
)

// BadgeAwarder grants badges whose criteria a user has just met.
type BadgeAwarder struct {
	reviews repository.ReviewRepository
	badges  repository.BadgeRepository
	events  *EventLog
	now     func() time.Time
}

// NewBadgeAwarder creates a BadgeAwarder. Awards are logged to events.
func NewBadgeAwarder(reviews repository.ReviewRepository, badges repository.BadgeRepository, events *EventLog, now func() time.Time) *BadgeAwarder {
	return &BadgeAwarder{reviews: reviews, badges: badges, events: events, now: now}
}

// CheckAndAward returns the badges newly granted by this call. The only rule
// is first_review: the user's review count is exactly one.
func (a *BadgeAwarder) CheckAndAward(ctx context.Context, userID int64) ([]models.Badge, error) {
	log := logger.FromContext(ctx)
	awarded := []models.Badge{}

	count, err := a.reviews.CountByUser(ctx, userID)
	if err != nil {
		log.Error("failed to count reviews: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if count != 1 {
		return awarded, nil
	}

	badge, err := a.award(ctx, userID, models.BadgeFirstReview)
	if err != nil {
		return nil, err
	}
	if badge != nil {
		awarded = append(awarded, *badge)
	}
	return awarded, nil
}

// award grants the named badge unless the user already holds it.
func (a *BadgeAwarder) award(ctx context.Context, userID int64, name string) (*models.Badge, error) {
	log := logger.FromContext(ctx)

	badge, err := a.badges.GetByName(ctx, name)
	if err != nil {
		log.Error("failed to look up badge %s: %v", name, err)
		return nil, errors.NewInternalError(err)
	}
	if badge == nil || !badge.IsActive {
		log.Debug("badge %s not available", name)
		return nil, nil
	}

	has, err := a.badges.HasBadge(ctx, userID, badge.ID)
	if err != nil {
		log.Error("failed to check badge ownership: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if has {
		return nil, nil
	}

	inserted, err := a.badges.Award(ctx, userID, badge.ID, a.now())
	if err != nil {
		log.Error("failed to award badge %s: %v", name, err)
		return nil, errors.NewInternalError(err)
	}
	if !inserted {
		return nil, nil
	}

	if err := a.events.Log(ctx, userID, models.EventBadgeEarned, badgePayload{BadgeID: badge.ID, BadgeName: badge.Name}); err != nil {
		return nil, err
	}
	log.Info("badge awarded: user_id=%d, badge=%s", userID, name)
	return badge, nil
}
