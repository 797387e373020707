package logger

import (
	"context"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AddFields adds fields to the logger in context and returns new context
func AddFields(ctx context.Context, fields ...zap.Field) context.Context {
	return ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(fields...))
}

// WithAction names the handler flow in every following log line
func WithAction(ctx context.Context, action string) context.Context {
	return AddFields(ctx, zap.String("action", action))
}

// WithIdentity tags the context logger with the authenticated caller
func WithIdentity(ctx context.Context, identity *entity.Identity) context.Context {
	if identity == nil {
		return ctx
	}
	return AddFields(ctx,
		zap.Int64("user_id", identity.UserID),
		zap.String("role", string(identity.Role)),
	)
}
