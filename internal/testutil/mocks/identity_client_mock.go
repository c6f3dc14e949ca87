package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/birdguide/internal/identity"
)

// MockIdentityClient is a mock implementation of identity.Client
type MockIdentityClient struct {
	mock.Mock
}

func (m *MockIdentityClient) GetUser(ctx context.Context, id string) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockIdentityClient) CreateUser(ctx context.Context, params identity.CreateUserParams) (*identity.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}
