package comparison

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const validReply = `{
  "timeline": {
    "industry_estimate": {"time": "24 weeks", "cost": "$120,000"},
    "formit_estimate": {"time": "10 weeks", "cost": "$45,000"},
    "justification": "AI-assisted coding shortens delivery"
  },
  "budget": {
    "industry_estimate": {"cost": "$120,000"},
    "formit_estimate": {"cost": "$45,000"},
    "justification": "Automated testing cuts QA cost"
  }
}`

type fakeProposalRepo struct {
	proposals map[int64]*entity.Proposal
}

func (f *fakeProposalRepo) GetByRequest(_ context.Context, requestID int64) (*entity.Proposal, error) {
	if p, ok := f.proposals[requestID]; ok {
		return p, nil
	}
	return nil, entity.ErrProposalNotFound
}

func (f *fakeProposalRepo) UpsertGenerated(context.Context, int64, entity.ProposalSections, time.Time) (*entity.Proposal, error) {
	panic("not used")
}

func (f *fakeProposalRepo) Save(context.Context, *entity.SaveProposalRequest) (*entity.Proposal, error) {
	panic("not used")
}

type fakeComparisonRepo struct {
	comparisons map[int64]*entity.Comparison
	writes      int
}

func (f *fakeComparisonRepo) GetByRequest(_ context.Context, requestID int64) (*entity.Comparison, error) {
	if c, ok := f.comparisons[requestID]; ok {
		return c, nil
	}
	return nil, entity.ErrComparisonNotFound
}

func (f *fakeComparisonRepo) Upsert(_ context.Context, requestID int64, e entity.ComparisonEstimates) (*entity.Comparison, error) {
	f.writes++
	c, ok := f.comparisons[requestID]
	if !ok {
		c = &entity.Comparison{ID: int64(len(f.comparisons) + 1), RequestID: requestID}
		f.comparisons[requestID] = c
	}
	c.ComparisonEstimates = e
	return c, nil
}

type fakeLLM struct {
	reply string
	err   error
	calls int
	last  *entity.LLMCompletionRequest
}

func (f *fakeLLM) Complete(_ context.Context, req *entity.LLMCompletionRequest) (string, error) {
	f.calls++
	f.last = req
	return f.reply, f.err
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Notify(_ context.Context, text string) error {
	f.messages = append(f.messages, text)
	return errors.New("telegram is down")
}

type testEnv struct {
	uc          *ComparisonUsecase
	llm         *fakeLLM
	comparisons *fakeComparisonRepo
	notifier    *fakeNotifier
}

func newTestEnv(minInterval time.Duration) *testEnv {
	env := &testEnv{
		llm:         &fakeLLM{reply: validReply},
		comparisons: &fakeComparisonRepo{comparisons: make(map[int64]*entity.Comparison)},
		notifier:    &fakeNotifier{},
	}
	proposals := &fakeProposalRepo{proposals: map[int64]*entity.Proposal{
		1: {ID: 1, RequestID: 1, Version: 1, ProposalSections: entity.ProposalSections{
			ProjectOverview: "Build CRM",
			ProjectScope:    "6 modules",
		}},
	}}

	env.uc = NewUsecase(proposals, env.comparisons, env.llm, env.notifier, nil,
		Config{MinInterval: minInterval, MaxTokens: 800, Temperature: 0.7}, zap.NewNop())
	return env
}

func TestGenerate(t *testing.T) {
	env := newTestEnv(0)

	c, err := env.uc.Generate(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), c.RequestID)
	assert.Equal(t, "24 weeks", c.TimelineIndustryTime)
	assert.Equal(t, "10 weeks", c.TimelineFormitTime)
	assert.Equal(t, "$120,000", c.BudgetIndustryCost)
	assert.Equal(t, "$45,000", c.BudgetFormitCost)
	assert.Equal(t, "AI-assisted coding shortens delivery", c.TimelineJustification)
	assert.Equal(t, "Automated testing cuts QA cost", c.BudgetJustification)

	require.NotNil(t, env.llm.last)
	assert.Equal(t, entity.LLMTaskComparison, env.llm.last.Task)
	prompt := env.llm.last.Messages[0].Content
	assert.Contains(t, prompt, "Project Overview: Build CRM")
	assert.Contains(t, prompt, "Scope: 6 modules")
	assert.Contains(t, prompt, "Compliance Requirements: None specified")

	// notification failures do not fail generation
	assert.Len(t, env.notifier.messages, 1)
}

func TestGenerateOverwritesSingleComparison(t *testing.T) {
	env := newTestEnv(0)
	ctx := context.Background()

	first, err := env.uc.Generate(ctx, 1)
	require.NoError(t, err)

	env.llm.reply = `{"timeline":{"industry_estimate":{"time":"20 weeks"},"formit_estimate":{"time":"8 weeks"}},` +
		`"budget":{"industry_estimate":{"cost":"$90k"},"formit_estimate":{"cost":"$30k"}}}`
	second, err := env.uc.Generate(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, env.comparisons.comparisons, 1)
	assert.Equal(t, "8 weeks", second.TimelineFormitTime)
	assert.Equal(t, "", second.BudgetJustification)
}

func TestGenerateWithoutProposal(t *testing.T) {
	env := newTestEnv(0)

	_, err := env.uc.Generate(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrProposalNotFound)
	assert.Zero(t, env.llm.calls)
	assert.Zero(t, env.comparisons.writes)
}

func TestGenerateBadOutput(t *testing.T) {
	replies := map[string]string{
		"prose":          "I estimate about ten weeks.",
		"missing budget": `{"timeline":{"industry_estimate":{"time":"1"},"formit_estimate":{"time":"1"}}}`,
		"empty estimate": `{"timeline":{"industry_estimate":{"time":""},"formit_estimate":{"time":"1"}},"budget":{"industry_estimate":{"cost":"1"},"formit_estimate":{"cost":"1"}}}`,
		"trailing prose": validReply + " hope this helps",
		"null formit":    `{"timeline":{"industry_estimate":{"time":"1"},"formit_estimate":null},"budget":{"industry_estimate":{"cost":"1"},"formit_estimate":{"cost":"1"}}}`,
	}

	for name, reply := range replies {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(0)
			env.llm.reply = reply

			_, err := env.uc.Generate(context.Background(), 1)
			var bad *entity.BadUpstreamOutputError
			require.True(t, errors.As(err, &bad))
			assert.Equal(t, reply, bad.Raw)
			assert.Zero(t, env.comparisons.writes)
			assert.Empty(t, env.notifier.messages)
		})
	}
}

func TestGenerateRateLimit(t *testing.T) {
	env := newTestEnv(time.Minute)
	ctx := context.Background()

	_, err := env.uc.Generate(ctx, 1)
	require.NoError(t, err)

	_, err = env.uc.Generate(ctx, 1)
	var rl *entity.RateLimitError
	require.True(t, errors.As(err, &rl))
	assert.Greater(t, rl.RetryAfter, int64(0))
	assert.LessOrEqual(t, rl.RetryAfter, int64(60))
	assert.Equal(t, 1, env.llm.calls)
}

func TestGenerateFailureDoesNotConsumeRateLimit(t *testing.T) {
	env := newTestEnv(time.Minute)
	ctx := context.Background()

	env.llm.err = entity.ErrUpstreamTimeout
	_, err := env.uc.Generate(ctx, 1)
	assert.ErrorIs(t, err, entity.ErrUpstreamTimeout)

	env.llm.err = nil
	_, err = env.uc.Generate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, env.llm.calls)
}

func TestGet(t *testing.T) {
	env := newTestEnv(0)
	ctx := context.Background()

	_, err := env.uc.Get(ctx, 1)
	assert.ErrorIs(t, err, entity.ErrComparisonNotFound)

	_, err = env.uc.Generate(ctx, 1)
	require.NoError(t, err)

	c, err := env.uc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "10 weeks", c.TimelineFormitTime)
}
