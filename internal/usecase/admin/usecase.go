package admin

import (
	"context"
	"fmt"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AdminUsecase serves the administrator review screens
type AdminUsecase struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
	logger     *zap.Logger
}

func NewUsecase(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository, logger *zap.Logger) *AdminUsecase {
	return &AdminUsecase{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// ListClientsWithAnswers returns every client with their requests and answers
func (uc *AdminUsecase) ListClientsWithAnswers(ctx context.Context) ([]*entity.ClientWithAnswers, error) {
	clients, err := uc.reviewRepo.ListClientsWithAnswers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (uc *AdminUsecase) GetUserForm(ctx context.Context, userID int64) (*entity.ClientWithAnswers, error) {
	form, err := uc.reviewRepo.GetUserWithAnswers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user form: %w", err)
	}
	return form, nil
}

// UpdateRole promotes or demotes a user. Admins cannot change their own role.
func (uc *AdminUsecase) UpdateRole(ctx context.Context, caller *entity.Identity, userID int64, role entity.Role) (*entity.User, error) {
	if caller != nil && caller.UserID == userID {
		return nil, fmt.Errorf("%w: cannot change your own role", entity.ErrForbidden)
	}

	user, err := uc.userRepo.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	ctxzap.Info(ctx, "user role updated",
		zap.Int64("user_id", userID),
		zap.String("role", string(role)),
	)

	return user, nil
}
