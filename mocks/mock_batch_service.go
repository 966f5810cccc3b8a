package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"carprice/internal/domain"
)

// MockBatchService is a mock implementation of service.BatchService.
// Export methods write the string in the first return value to w.
type MockBatchService struct {
	mock.Mock
}

func (m *MockBatchService) ProcessUpload(ctx context.Context, sessionID, fileName string, contents []byte) (*domain.BatchState, error) {
	args := m.Called(ctx, sessionID, fileName, contents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchState), args.Error(1)
}

func (m *MockBatchService) State(ctx context.Context, sessionID string) *domain.BatchState {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(*domain.BatchState)
}

func (m *MockBatchService) Reset(ctx context.Context, sessionID string) {
	m.Called(ctx, sessionID)
}

func (m *MockBatchService) ExportResults(ctx context.Context, sessionID string, w io.Writer) error {
	args := m.Called(ctx, sessionID, w)
	if args.Error(1) == nil {
		_, _ = io.WriteString(w, args.String(0))
	}
	return args.Error(1)
}

func (m *MockBatchService) ExportWorkbook(ctx context.Context, sessionID string, w io.Writer) error {
	args := m.Called(ctx, sessionID, w)
	if args.Error(1) == nil {
		_, _ = io.WriteString(w, args.String(0))
	}
	return args.Error(1)
}

func (m *MockBatchService) ArchiveURL(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockBatchService) PredictSingle(ctx context.Context, form domain.CarForm) (*domain.SinglePrediction, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SinglePrediction), args.Error(1)
}
