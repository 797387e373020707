package proposal

import (
	"context"

	"github.com/futig/proposal-backend/internal/entity"
)

type LLMConnector interface {
	Complete(ctx context.Context, req *entity.LLMCompletionRequest) (string, error)
}

type Notifier interface {
	Notify(ctx context.Context, text string) error
}
