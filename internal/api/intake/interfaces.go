package intake

import (
	"context"

	"github.com/futig/proposal-backend/internal/entity"
)

type IntakeUsecase interface {
	ListWizard(ctx context.Context, serviceType string) ([]*entity.WizardStep, error)
	FindOrCreateRequest(ctx context.Context, identity *entity.Identity, serviceType string) (*entity.Request, error)
	SaveAnswers(ctx context.Context, identity *entity.Identity, req *entity.SaveAnswersRequest) (*entity.SaveAnswersResult, error)
	ListAnswers(ctx context.Context, requestID int64) ([]*entity.AnswerWithQuestion, error)
}
