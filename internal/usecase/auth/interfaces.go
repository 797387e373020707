package auth

import (
	"context"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/integration/mailer"
)

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type TokenSigner interface {
	Sign(user *entity.User) (string, error)
}
