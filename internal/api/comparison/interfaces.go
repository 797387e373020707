package comparison

import (
	"context"

	"github.com/futig/proposal-backend/internal/entity"
)

type ComparisonUsecase interface {
	Generate(ctx context.Context, requestID int64) (*entity.Comparison, error)
	Get(ctx context.Context, requestID int64) (*entity.Comparison, error)
}
