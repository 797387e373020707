package proposal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/pkg/formatter"
	"github.com/futig/proposal-backend/internal/pkg/logger"
	"github.com/futig/proposal-backend/internal/pkg/metrics"
	"github.com/futig/proposal-backend/internal/repository"
	"github.com/futig/proposal-backend/internal/telegram"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const metricsKind = "proposal"

type Config struct {
	// MinInterval between two generations for the same request; zero disables the check
	MinInterval time.Duration
	MaxTokens   int
	Temperature float64
}

// ProposalUsecase generates, stores and exports proposals
type ProposalUsecase struct {
	requestRepo  repository.RequestRepository
	answerRepo   repository.AnswerRepository
	proposalRepo repository.ProposalRepository
	llmConnector LLMConnector
	notifier     Notifier
	formatters   *formatter.Factory
	metrics      *metrics.Metrics
	cfg          Config
	now          func() time.Time
	logger       *zap.Logger
}

func NewUsecase(
	requestRepo repository.RequestRepository,
	answerRepo repository.AnswerRepository,
	proposalRepo repository.ProposalRepository,
	llmConnector LLMConnector,
	notifier Notifier,
	formatters *formatter.Factory,
	metrics *metrics.Metrics,
	cfg Config,
	logger *zap.Logger,
) *ProposalUsecase {
	return &ProposalUsecase{
		requestRepo:  requestRepo,
		answerRepo:   answerRepo,
		proposalRepo: proposalRepo,
		llmConnector: llmConnector,
		notifier:     notifier,
		formatters:   formatters,
		metrics:      metrics,
		cfg:          cfg,
		now:          time.Now,
		logger:       logger,
	}
}

// Generate builds a prompt from the request answers, asks the LLM for the
// eight proposal sections and upserts the result. Nothing is written on failure.
func (uc *ProposalUsecase) Generate(ctx context.Context, requestID int64) (*entity.Proposal, error) {
	ctx = logger.AddFields(ctx, zap.Int64("request_id", requestID))

	proposal, err := uc.generate(ctx, requestID)
	uc.metrics.ObserveGeneration(metricsKind, metrics.OutcomeOf(err))
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "proposal generated", zap.Int("version", proposal.Version))

	if err := uc.notifier.Notify(ctx, telegram.ProposalGenerated(proposal)); err != nil {
		ctxzap.Warn(ctx, "failed to notify admins about proposal", zap.Error(err))
	}

	return proposal, nil
}

func (uc *ProposalUsecase) generate(ctx context.Context, requestID int64) (*entity.Proposal, error) {
	if _, err := uc.requestRepo.Get(ctx, requestID); err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}

	answers, err := uc.answerRepo.ListWithQuestions(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	if len(answers) == 0 {
		return nil, entity.ErrNoAnswers
	}

	if err := uc.checkRateLimit(ctx, requestID); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "requesting proposal generation", zap.Int("answer_count", len(answers)))

	start := time.Now()
	raw, err := uc.llmConnector.Complete(ctx, &entity.LLMCompletionRequest{
		Task:        entity.LLMTaskProposal,
		Messages:    buildMessages(answers),
		MaxTokens:   uc.cfg.MaxTokens,
		Temperature: uc.cfg.Temperature,
	})
	uc.metrics.ObserveUpstream(metricsKind, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("complete proposal: %w", err)
	}

	sections, err := parseSections(raw)
	if err != nil {
		ctxzap.Warn(ctx, "unusable proposal output", zap.Error(err), zap.Int("raw_length", len(raw)))
		return nil, err
	}

	proposal, err := uc.proposalRepo.UpsertGenerated(ctx, requestID, sections, uc.now())
	if err != nil {
		return nil, fmt.Errorf("save generated proposal: %w", err)
	}

	return proposal, nil
}

func (uc *ProposalUsecase) checkRateLimit(ctx context.Context, requestID int64) error {
	if uc.cfg.MinInterval <= 0 {
		return nil
	}

	existing, err := uc.proposalRepo.GetByRequest(ctx, requestID)
	if errors.Is(err, entity.ErrProposalNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get proposal: %w", err)
	}
	if existing.LastGeneratedAt == nil {
		return nil
	}

	wait := uc.cfg.MinInterval - uc.now().Sub(*existing.LastGeneratedAt)
	if wait <= 0 {
		return nil
	}

	ctxzap.Info(ctx, "proposal generation rate limited", zap.Duration("retry_after", wait))
	return &entity.RateLimitError{RetryAfter: int64(math.Ceil(wait.Seconds()))}
}

func (uc *ProposalUsecase) Get(ctx context.Context, requestID int64) (*entity.Proposal, error) {
	proposal, err := uc.proposalRepo.GetByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	return proposal, nil
}

// Save applies a manual edit, creating the proposal when the request has none yet
func (uc *ProposalUsecase) Save(ctx context.Context, req *entity.SaveProposalRequest) (*entity.Proposal, error) {
	if _, err := uc.requestRepo.Get(ctx, req.RequestID); err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}

	proposal, err := uc.proposalRepo.Save(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("save proposal: %w", err)
	}

	ctxzap.Info(ctx, "proposal saved",
		zap.Int64("request_id", req.RequestID),
		zap.Int("version", proposal.Version),
		zap.String("status", string(proposal.Status)),
	)

	return proposal, nil
}

// Export renders the stored proposal in the requested format
func (uc *ProposalUsecase) Export(ctx context.Context, requestID int64, format entity.ResultFormat) (*entity.ExportedFile, error) {
	fm, err := uc.formatters.Create(format)
	if err != nil {
		return nil, err
	}

	request, err := uc.requestRepo.Get(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}

	proposal, err := uc.proposalRepo.GetByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get proposal: %w", err)
	}

	content, err := fm.Format(formatter.ProposalDocument(proposal, request.ProjectName))
	if err != nil {
		return nil, fmt.Errorf("format proposal: %w", err)
	}

	return &entity.ExportedFile{
		Content:     content,
		ContentType: fm.ContentType(),
		FileName:    fmt.Sprintf("proposal-%d-v%d%s", requestID, proposal.Version, fm.FileExtension()),
	}, nil
}
