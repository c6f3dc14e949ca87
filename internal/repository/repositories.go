package repository

import "context"

// Repositories groups every repository bound to the same handle, either the
// pooled connection or a single transaction.
type Repositories struct {
	Species  SpeciesRepository
	Users    UserRepository
	Reviews  ReviewRepository
	Progress ProgressRepository
	Badges   BadgeRepository
	Events   EventRepository
	Sessions SessionRepository
}

// TxManager runs fn with repositories scoped to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
