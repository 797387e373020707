package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/futig/proposal-backend/internal/config"
	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/integration/common"
	pkghttp "github.com/futig/proposal-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector talks to an OpenAI compatible chat completions API
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
	opts ...pkghttp.HttpOpts,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger, opts...),
		config:    cfg,
		logger:    logger,
	}
}

// Complete sends the conversation and returns the text of the first choice
func (c *Connector) Complete(ctx context.Context, req *entity.LLMCompletionRequest) (string, error) {
	ctxzap.Info(ctx, "requesting completion from LLM service",
		zap.String("task", string(req.Task)),
		zap.String("model", c.config.Model),
		zap.Int("message_count", len(req.Messages)),
	)

	chatReq := &entity.LLMChatRequest{
		Model:       c.config.Model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if c.config.JSONResponseFormat {
		chatReq.ResponseFormat = &entity.LLMResponseFormat{Type: "json_object"}
	}

	var resp entity.LLMChatResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.CompletionsEndpoint, chatReq, &resp)
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion has no choices", entity.ErrUpstream)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	ctxzap.Info(ctx, "completion received",
		zap.String("task", string(req.Task)),
		zap.String("model", resp.Model),
		zap.String("finish_reason", resp.Choices[0].FinishReason),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Int("content_length", len(content)),
	)

	return content, nil
}

func classifyError(err error) error {
	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", entity.ErrUpstreamTimeout, err)
	}

	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusGatewayTimeout {
		return fmt.Errorf("%w: %v", entity.ErrUpstreamTimeout, err)
	}

	return fmt.Errorf("%w: %v", entity.ErrUpstream, err)
}
