package admin

import (
	"context"

	"github.com/futig/proposal-backend/internal/entity"
)

type AdminUsecase interface {
	ListClientsWithAnswers(ctx context.Context) ([]*entity.ClientWithAnswers, error)
	GetUserForm(ctx context.Context, userID int64) (*entity.ClientWithAnswers, error)
	UpdateRole(ctx context.Context, caller *entity.Identity, userID int64, role entity.Role) (*entity.User, error)
}
