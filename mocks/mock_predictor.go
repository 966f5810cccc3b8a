package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carprice/internal/domain"
)

// MockPredictor is a mock implementation of port.Predictor.
type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) PredictBatch(ctx context.Context, records []domain.CarRecord) ([]domain.PredictionResult, error) {
	args := m.Called(ctx, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PredictionResult), args.Error(1)
}

func (m *MockPredictor) PredictSingle(ctx context.Context, record domain.CarRecord) (domain.PredictionResult, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(domain.PredictionResult), args.Error(1)
}
