package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vytor/birdguide/internal/config"
	"github.com/vytor/birdguide/internal/logger"
)

// Auth0Client talks to the Auth0 Management API v2.
type Auth0Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	connection string
	log        *logger.Logger
}

// Ensure Auth0Client implements the interface
var _ Client = (*Auth0Client)(nil)

// NewAuth0Client builds a client for cfg.Domain. The domain may be given
// with or without a scheme.
func NewAuth0Client(cfg config.Auth0Config) *Auth0Client {
	base := strings.TrimRight(cfg.Domain, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Auth0Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    base + "/api/v2",
		token:      cfg.ManagementToken,
		connection: cfg.Connection,
		log:        logger.Default().WithPrefix("auth0"),
	}
}

type auth0Error struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	ErrorCode  string `json:"errorCode"`
}

func (c *Auth0Client) GetUser(ctx context.Context, id string) (*User, error) {
	log := logger.FromContext(ctx).WithPrefix("auth0").WithField("user_id", id)
	log.Debug("fetching user")

	var u User
	if err := c.do(ctx, log, http.MethodGet, "/users/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	log.Debug("fetched user: email=%s", u.Email)
	return &u, nil
}

func (c *Auth0Client) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	log := logger.FromContext(ctx).WithPrefix("auth0").WithField("email", params.Email)
	log.Debug("creating user")

	body := map[string]any{
		"email":      params.Email,
		"password":   params.Password,
		"connection": c.connection,
	}
	if params.Username != "" {
		body["username"] = params.Username
	}

	var u User
	if err := c.do(ctx, log, http.MethodPost, "/users", body, &u); err != nil {
		return nil, err
	}
	log.Info("created identity user %s", u.UserID)
	return &u, nil
}

func (c *Auth0Client) do(ctx context.Context, log *logger.Logger, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	log.Debug("%s %s responded in %v, status=%d", method, path, time.Since(start), resp.StatusCode)

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		apiErr := &APIError{Status: resp.StatusCode, Message: string(raw)}
		var ae auth0Error
		if json.Unmarshal(raw, &ae) == nil && ae.Message != "" {
			apiErr.Message = ae.Message
			apiErr.Code = ae.ErrorCode
		}
		log.Error("identity request failed: status=%d, body=%s", resp.StatusCode, string(raw))
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("failed to decode response: %v", err)
		return fmt.Errorf("decode identity response: %w", err)
	}
	return nil
}
