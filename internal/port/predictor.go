package port

import (
	"context"

	"carprice/internal/domain"
)

// Predictor abstracts the outbound price prediction call.
type Predictor interface {
	PredictBatch(ctx context.Context, records []domain.CarRecord) ([]domain.PredictionResult, error)
	PredictSingle(ctx context.Context, record domain.CarRecord) (domain.PredictionResult, error)
}
