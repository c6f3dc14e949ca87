package identity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/birdguide/internal/config"
	"github.com/vytor/birdguide/internal/identity"
)

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func newClient() *identity.Auth0Client {
	return identity.NewAuth0Client(config.Auth0Config{
		Domain:          "birdguide.eu.auth0.com",
		ManagementToken: "mgmt-token",
		Connection:      "Username-Password-Authentication",
		Timeout:         time.Second,
	})
}

func TestAuth0Client_GetUser(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, "https://birdguide.eu.auth0.com/api/v2/users/auth0%7C123",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer mgmt-token", req.Header.Get("Authorization"))
			return httpmock.NewStringResponse(http.StatusOK, `{"user_id":"auth0|123","email":"kestrel@example.com","email_verified":true,"nickname":"kestrel"}`), nil
		})

	u, err := newClient().GetUser(context.Background(), "auth0|123")
	require.NoError(t, err)
	assert.Equal(t, "auth0|123", u.UserID)
	assert.Equal(t, "kestrel@example.com", u.Email)
	assert.Equal(t, "kestrel", u.Nickname)
	assert.True(t, u.EmailVerified)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestAuth0Client_GetUserNotFound(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, `=~^https://birdguide\.eu\.auth0\.com/api/v2/users/`,
		httpmock.NewStringResponder(http.StatusNotFound, `{"statusCode":404,"error":"Not Found","message":"The user does not exist.","errorCode":"inexistent_user"}`))

	u, err := newClient().GetUser(context.Background(), "auth0|missing")
	assert.ErrorIs(t, err, identity.ErrNotFound)
	assert.Nil(t, u)
}

func TestAuth0Client_CreateUser(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodPost, "https://birdguide.eu.auth0.com/api/v2/users",
		func(req *http.Request) (*http.Response, error) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "wren@example.com", body["email"])
			assert.Equal(t, "s3cret!", body["password"])
			assert.Equal(t, "Username-Password-Authentication", body["connection"])
			assert.Equal(t, "wren", body["username"])
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			return httpmock.NewStringResponse(http.StatusCreated, `{"user_id":"auth0|new","email":"wren@example.com","username":"wren"}`), nil
		})

	u, err := newClient().CreateUser(context.Background(), identity.CreateUserParams{
		Email:    "wren@example.com",
		Password: "s3cret!",
		Username: "wren",
	})
	require.NoError(t, err)
	assert.Equal(t, "auth0|new", u.UserID)
	assert.Equal(t, "wren", u.Username)
}

func TestAuth0Client_CreateUserConflict(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodPost, "https://birdguide.eu.auth0.com/api/v2/users",
		httpmock.NewStringResponder(http.StatusConflict, `{"statusCode":409,"error":"Conflict","message":"The user already exists.","errorCode":"auth0_idp_error"}`))

	_, err := newClient().CreateUser(context.Background(), identity.CreateUserParams{Email: "wren@example.com", Password: "x"})
	require.Error(t, err)

	var apiErr *identity.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "The user already exists.", apiErr.Message)
	assert.Equal(t, "auth0_idp_error", apiErr.Code)
}

func TestAuth0Client_ServerErrorWithPlainBody(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, `=~^https://birdguide\.eu\.auth0\.com/api/v2/users/`,
		httpmock.NewStringResponder(http.StatusBadGateway, `upstream unavailable`))

	_, err := newClient().GetUser(context.Background(), "auth0|123")

	var apiErr *identity.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
}
