package builder

import (
	"context"
	"fmt"

	"github.com/futig/proposal-backend/internal/config"
	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/pkg/validator"
	"github.com/futig/proposal-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// RoleUpdater changes a user's role from the command line, e.g. to bootstrap the first admin
type RoleUpdater struct {
	users  repository.UserRepository
	db     *pgxpool.Pool
	logger *zap.Logger
}

func BuildRoleUpdater() (*RoleUpdater, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	return newRoleUpdater(repository.NewUserPostgres(db), db, logger), logger, nil
}

func newRoleUpdater(users repository.UserRepository, db *pgxpool.Pool, logger *zap.Logger) *RoleUpdater {
	return &RoleUpdater{
		users:  users,
		db:     db,
		logger: logger,
	}
}

// Update looks the user up by email and assigns role
func (u *RoleUpdater) Update(ctx context.Context, email string, role entity.Role) (*entity.User, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", entity.ErrValidation, role)
	}

	user, err := u.users.GetByEmail(ctx, validator.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user.Role == role {
		u.logger.Info("user already has the role", zap.Int64("user_id", user.ID))
		return user, nil
	}

	updated, err := u.users.UpdateRole(ctx, user.ID, role)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	return updated, nil
}

func (u *RoleUpdater) Close() {
	if u.db != nil {
		u.db.Close()
		u.db = nil
	}
}
