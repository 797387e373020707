package intake

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/pkg/logger"
	"github.com/futig/proposal-backend/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// IntakeUsecase serves the questionnaire and collects client answers
type IntakeUsecase struct {
	wizardRepo  repository.WizardRepository
	requestRepo repository.RequestRepository
	answerRepo  repository.AnswerRepository
	logger      *zap.Logger
}

func NewUsecase(
	wizardRepo repository.WizardRepository,
	requestRepo repository.RequestRepository,
	answerRepo repository.AnswerRepository,
	logger *zap.Logger,
) *IntakeUsecase {
	return &IntakeUsecase{
		wizardRepo:  wizardRepo,
		requestRepo: requestRepo,
		answerRepo:  answerRepo,
		logger:      logger,
	}
}

// ListWizard returns the questionnaire. With a service type only general steps
// and steps of that type are returned.
func (uc *IntakeUsecase) ListWizard(ctx context.Context, serviceType string) ([]*entity.WizardStep, error) {
	if serviceType != "" {
		if err := uc.checkServiceType(ctx, serviceType); err != nil {
			return nil, err
		}
	}

	steps, err := uc.wizardRepo.ListSteps(ctx, serviceType)
	if err != nil {
		return nil, fmt.Errorf("list wizard steps: %w", err)
	}
	return steps, nil
}

// FindOrCreateRequest returns the caller's request for a service type
func (uc *IntakeUsecase) FindOrCreateRequest(ctx context.Context, identity *entity.Identity, serviceType string) (*entity.Request, error) {
	if identity == nil {
		return nil, entity.ErrUnauthorized
	}
	if err := uc.checkServiceType(ctx, serviceType); err != nil {
		return nil, err
	}

	request, err := uc.requestRepo.FindOrCreate(ctx, identity.UserID, serviceType)
	if err != nil {
		return nil, fmt.Errorf("find or create request: %w", err)
	}

	ctxzap.Info(ctx, "request resolved",
		zap.Int64("request_id", request.ID),
		zap.String("service_type", serviceType),
	)

	return request, nil
}

// SaveAnswers upserts a batch of answers. The request is taken from the id when it
// exists, otherwise the caller's request for the service type is found or created.
func (uc *IntakeUsecase) SaveAnswers(ctx context.Context, identity *entity.Identity, req *entity.SaveAnswersRequest) (*entity.SaveAnswersResult, error) {
	request, err := uc.resolveRequest(ctx, identity, req)
	if err != nil {
		return nil, err
	}

	ctx = logger.AddFields(ctx, zap.Int64("request_id", request.ID))

	answers, err := uc.answerRepo.UpsertBatch(ctx, request.ID, req.Answers)
	if err != nil {
		return nil, fmt.Errorf("save answers: %w", err)
	}

	ctxzap.Info(ctx, "answers saved", zap.Int("count", len(answers)))

	return &entity.SaveAnswersResult{
		RequestID: request.ID,
		Answers:   answers,
	}, nil
}

func (uc *IntakeUsecase) resolveRequest(ctx context.Context, identity *entity.Identity, req *entity.SaveAnswersRequest) (*entity.Request, error) {
	if req.ServiceType != "" {
		if err := uc.checkServiceType(ctx, req.ServiceType); err != nil {
			return nil, err
		}
	}

	if req.RequestID != nil && *req.RequestID > 0 {
		request, err := uc.requestRepo.Get(ctx, *req.RequestID)
		switch {
		case err == nil:
			return request, nil
		// an unknown id falls back to the service type when one is given
		case !errors.Is(err, entity.ErrRequestNotFound) || req.ServiceType == "":
			return nil, fmt.Errorf("get request: %w", err)
		}
	}

	if req.ServiceType == "" {
		return nil, fmt.Errorf("%w: requestId or serviceType", entity.ErrMissingField)
	}
	if identity == nil {
		return nil, fmt.Errorf("%w: authentication required to create a request", entity.ErrUnauthorized)
	}

	request, err := uc.requestRepo.FindOrCreate(ctx, identity.UserID, req.ServiceType)
	if err != nil {
		return nil, fmt.Errorf("find or create request: %w", err)
	}
	return request, nil
}

func (uc *IntakeUsecase) checkServiceType(ctx context.Context, serviceType string) error {
	exists, err := uc.wizardRepo.ServiceTypeExists(ctx, serviceType)
	if err != nil {
		return fmt.Errorf("check service type: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %q", entity.ErrUnknownService, serviceType)
	}
	return nil
}

// ListAnswers returns the answers of a request joined to their questions
func (uc *IntakeUsecase) ListAnswers(ctx context.Context, requestID int64) ([]*entity.AnswerWithQuestion, error) {
	if _, err := uc.requestRepo.Get(ctx, requestID); err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}

	answers, err := uc.answerRepo.ListWithQuestions(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return answers, nil
}
