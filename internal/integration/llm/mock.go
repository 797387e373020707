package llm

import (
	"context"
	"fmt"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const mockProposal = `{
  "overview": "A responsive web platform built from the intake answers (MOCK).",
  "scope": "- Discovery workshop\n- UI/UX design\n- Web application\n- Admin dashboard",
  "timeline": "Discovery: 1 week\nDesign: 2 weeks\nDevelopment: 6 weeks\nQA and launch: 1 week",
  "budget": "Estimated $24,000 split across discovery, design, development and QA.",
  "terms_and_conditions": "50% upfront, 50% on delivery. Net 15 payment terms.",
  "next_steps": "Review this proposal and schedule a kickoff call.",
  "deliverables": "- Source code repository\n- Deployed application\n- Documentation",
  "compliance_requirements": ""
}`

const mockComparison = `{
  "timeline": {
    "industry_estimate": {"time": "16 weeks", "cost": "$60,000"},
    "formit_estimate": {"time": "10 weeks", "cost": "$24,000"},
    "justification": "AI-assisted coding and automated testing shorten delivery (MOCK)."
  },
  "budget": {
    "industry_estimate": {"cost": "$60,000"},
    "formit_estimate": {"cost": "$24,000"},
    "justification": "Smaller team and automated QA reduce cost (MOCK)."
  }
}`

// MockConnector returns canned JSON documents instead of calling the LLM service
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Complete(ctx context.Context, req *entity.LLMCompletionRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] requesting completion", zap.String("task", string(req.Task)))

	switch req.Task {
	case entity.LLMTaskProposal:
		return mockProposal, nil
	case entity.LLMTaskComparison:
		return mockComparison, nil
	default:
		return "", fmt.Errorf("%w: mock has no reply for task %q", entity.ErrUpstream, req.Task)
	}
}
