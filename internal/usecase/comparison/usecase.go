package comparison

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/pkg/logger"
	"github.com/futig/proposal-backend/internal/pkg/metrics"
	"github.com/futig/proposal-backend/internal/pkg/ratelimit"
	"github.com/futig/proposal-backend/internal/repository"
	"github.com/futig/proposal-backend/internal/telegram"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const metricsKind = "comparison"

type Config struct {
	MinInterval time.Duration
	MaxTokens   int
	Temperature float64
}

type ComparisonUsecase struct {
	proposalRepo   repository.ProposalRepository
	comparisonRepo repository.ComparisonRepository
	llmConnector   LLMConnector
	notifier       Notifier
	limiter        *ratelimit.Limiter
	metrics        *metrics.Metrics
	cfg            Config
	logger         *zap.Logger
}

func NewUsecase(
	proposalRepo repository.ProposalRepository,
	comparisonRepo repository.ComparisonRepository,
	llmConnector LLMConnector,
	notifier Notifier,
	metrics *metrics.Metrics,
	cfg Config,
	logger *zap.Logger,
) *ComparisonUsecase {
	return &ComparisonUsecase{
		proposalRepo:   proposalRepo,
		comparisonRepo: comparisonRepo,
		llmConnector:   llmConnector,
		notifier:       notifier,
		limiter:        ratelimit.NewLimiter(cfg.MinInterval),
		metrics:        metrics,
		cfg:            cfg,
		logger:         logger,
	}
}

// Generate estimates industry vs accelerated delivery for the request's proposal
// and upserts the single comparison kept per request.
func (uc *ComparisonUsecase) Generate(ctx context.Context, requestID int64) (*entity.Comparison, error) {
	ctx = logger.AddFields(ctx, zap.Int64("request_id", requestID))

	comparison, err := uc.generate(ctx, requestID)
	uc.metrics.ObserveGeneration(metricsKind, metrics.OutcomeOf(err))
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "comparison generated")

	if err := uc.notifier.Notify(ctx, telegram.ComparisonGenerated(comparison)); err != nil {
		ctxzap.Warn(ctx, "failed to notify admins about comparison", zap.Error(err))
	}

	return comparison, nil
}

func (uc *ComparisonUsecase) generate(ctx context.Context, requestID int64) (*entity.Comparison, error) {
	// a comparison is derived from the proposal, so one has to exist first
	proposal, err := uc.proposalRepo.GetByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get proposal: %w", err)
	}

	key := strconv.FormatInt(requestID, 10)
	if wait, ok := uc.limiter.Allow(key); !ok {
		ctxzap.Info(ctx, "comparison generation rate limited", zap.Duration("retry_after", wait))
		return nil, &entity.RateLimitError{RetryAfter: int64(math.Ceil(wait.Seconds()))}
	}

	comparison, err := uc.complete(ctx, requestID, proposal)
	if err != nil {
		// a failed attempt should not block the next one
		uc.limiter.Reset(key)
		return nil, err
	}

	return comparison, nil
}

func (uc *ComparisonUsecase) complete(ctx context.Context, requestID int64, proposal *entity.Proposal) (*entity.Comparison, error) {
	ctxzap.Info(ctx, "requesting comparison generation", zap.Int("proposal_version", proposal.Version))

	start := time.Now()
	raw, err := uc.llmConnector.Complete(ctx, &entity.LLMCompletionRequest{
		Task:        entity.LLMTaskComparison,
		Messages:    buildMessages(proposal),
		MaxTokens:   uc.cfg.MaxTokens,
		Temperature: uc.cfg.Temperature,
	})
	uc.metrics.ObserveUpstream(metricsKind, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("complete comparison: %w", err)
	}

	estimates, err := parseEstimates(raw)
	if err != nil {
		ctxzap.Warn(ctx, "unusable comparison output", zap.Error(err), zap.Int("raw_length", len(raw)))
		return nil, err
	}

	comparison, err := uc.comparisonRepo.Upsert(ctx, requestID, estimates)
	if err != nil {
		return nil, fmt.Errorf("save comparison: %w", err)
	}

	return comparison, nil
}

func (uc *ComparisonUsecase) Get(ctx context.Context, requestID int64) (*entity.Comparison, error) {
	comparison, err := uc.comparisonRepo.GetByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get comparison: %w", err)
	}
	return comparison, nil
}
