package logger

import (
	"context"
	"testing"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	ctx = WithAction(ctx, "GenerateProposal")
	ctx = WithIdentity(ctx, &entity.Identity{UserID: 7, Role: entity.RoleAdmin})
	ctx = WithIdentity(ctx, nil)
	ctxzap.Info(ctx, "done")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GenerateProposal", fields["action"])
	assert.Equal(t, int64(7), fields["user_id"])
	assert.Equal(t, "admin", fields["role"])
}
