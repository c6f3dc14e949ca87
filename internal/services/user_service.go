package services

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/vytor/birdguide/internal/errors"
	"github.com/vytor/birdguide/internal/identity"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/repository"
)

const (
	minPasswordLength = 8
	maxUsernameTries  = 5
)

// RegisterParams are the fields accepted by POST /auth/register.
type RegisterParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// UserService handles local user accounts
type UserService interface {
	EnsureUser(ctx context.Context, id models.Identity) (*models.User, error)
	Register(ctx context.Context, params RegisterParams) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	userRepo      repository.UserRepository
	idp           identity.Client
	defaultLocale string
}

// NewUserService creates a new UserService. idp may be nil, in which case
// profiles are not enriched and registration is unavailable.
func NewUserService(userRepo repository.UserRepository, idp identity.Client, defaultLocale string) UserService {
	return &userService{userRepo: userRepo, idp: idp, defaultLocale: defaultLocale}
}

func (s *userService) EnsureUser(ctx context.Context, id models.Identity) (*models.User, error) {
	log := logger.FromContext(ctx)

	if id.Subject == "" {
		return nil, errors.NewUnauthorizedError("token has no subject")
	}

	existing, err := s.userRepo.GetByAuth0ID(ctx, id.Subject)
	if err != nil {
		log.Error("failed to look up user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		if existing.DeletedAt != nil {
			return nil, errors.NewUnauthorizedError("account has been deleted")
		}
		email := id.Email
		if email == "" {
			email = existing.Email
		}
		user, err := s.userRepo.Upsert(ctx, models.UserUpsert{Auth0ID: id.Subject, Email: email, Username: existing.Username, Locale: existing.Locale})
		if err != nil {
			log.Error("failed to refresh user: %v", err)
			return nil, errors.NewInternalError(err)
		}
		return user, nil
	}

	email, preferred := id.Email, ""
	if s.idp != nil {
		profile, err := s.idp.GetUser(ctx, id.Subject)
		if err != nil {
			log.Warn("could not fetch identity profile for %s: %v", id.Subject, err)
		} else {
			if email == "" {
				email = profile.Email
			}
			preferred = profile.Username
			if preferred == "" {
				preferred = profile.Nickname
			}
		}
	}

	return s.create(ctx, id.Subject, email, preferred)
}

func (s *userService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("registering user: email=%s", params.Email)

	params.Email = strings.TrimSpace(params.Email)
	params.Username = strings.TrimSpace(params.Username)
	if !strings.Contains(params.Email, "@") {
		return nil, errors.NewValidationError("email", "must be a valid email address")
	}
	if len(params.Password) < minPasswordLength {
		return nil, errors.NewValidationError("password", "must be at least 8 characters")
	}
	if s.idp == nil {
		return nil, errors.NewBadRequestError("registration is not enabled")
	}

	if params.Username != "" {
		taken, err := s.userRepo.UsernameTaken(ctx, params.Username)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		if taken {
			return nil, errors.NewConflictError("username is already taken", nil)
		}
	}

	profile, err := s.idp.CreateUser(ctx, identity.CreateUserParams{
		Email:    params.Email,
		Password: params.Password,
		Username: params.Username,
	})
	if err != nil {
		log.Error("identity provider rejected registration: %v", err)
		return nil, identityError(err)
	}

	return s.create(ctx, profile.UserID, params.Email, params.Username)
}

func (s *userService) create(ctx context.Context, subject, email, preferred string) (*models.User, error) {
	log := logger.FromContext(ctx)

	username, err := s.uniqueUsername(ctx, usernameBase(preferred, email))
	if err != nil {
		log.Error("failed to pick username: %v", err)
		return nil, errors.NewInternalError(err)
	}

	user, err := s.userRepo.Upsert(ctx, models.UserUpsert{
		Auth0ID:  subject,
		Email:    email,
		Username: username,
		Locale:   s.defaultLocale,
	})
	if err != nil {
		log.Error("failed to create user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("user created: id=%d, username=%s", user.ID, user.Username)
	return user, nil
}

func (s *userService) uniqueUsername(ctx context.Context, base string) (string, error) {
	candidate := base
	for i := 0; i < maxUsernameTries; i++ {
		taken, err := s.userRepo.UsernameTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + uuid.NewString()[:6]
	}
	return base + "-" + strings.ReplaceAll(uuid.NewString(), "-", ""), nil
}

// usernameBase derives a username from the preferred name or the local part
// of the email, keeping letters, digits, '.', '_' and '-'.
func usernameBase(preferred, email string) string {
	raw := preferred
	if raw == "" {
		raw, _, _ = strings.Cut(email, "@")
	}
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "birder"
	}
	return b.String()
}

func identityError(err error) *errors.AppError {
	var apiErr *identity.APIError
	if !stderrors.As(err, &apiErr) {
		return errors.NewInternalError(err)
	}
	switch apiErr.Status {
	case http.StatusConflict:
		return errors.NewConflictError("account already exists", err)
	case http.StatusBadRequest:
		return errors.NewBadRequestError(apiErr.Message)
	default:
		return errors.NewInternalError(err)
	}
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting user: id=%d", id)

	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil || user.DeletedAt != nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting user: id=%d", id)

	if err := s.userRepo.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		log.Error("failed to delete user: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("user %d deleted", id)
	return nil
}
