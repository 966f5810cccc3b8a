package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carprice/internal/service"
)

// MockRelayService is a mock implementation of service.RelayService.
type MockRelayService struct {
	mock.Mock
}

func (m *MockRelayService) Forward(ctx context.Context, body []byte) (*service.RelayResponse, error) {
	args := m.Called(ctx, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RelayResponse), args.Error(1)
}

func (m *MockRelayService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
