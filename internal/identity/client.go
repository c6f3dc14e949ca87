package identity

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when the identity provider has no such user.
var ErrNotFound = errors.New("identity: user not found")

// User is the identity provider's view of an account.
type User struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Username      string `json:"username,omitempty"`
	Nickname      string `json:"nickname,omitempty"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
}

// CreateUserParams are the fields needed to register a new account.
type CreateUserParams struct {
	Email    string
	Password string
	Username string
}

// Client defines the identity provider operations the service uses.
type Client interface {
	GetUser(ctx context.Context, id string) (*User, error)
	CreateUser(ctx context.Context, params CreateUserParams) (*User, error)
}

// APIError is a non-2xx response from the identity provider.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("identity api status %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("identity api status %d: %s", e.Status, e.Message)
}
