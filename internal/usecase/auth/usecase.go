package auth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/futig/proposal-backend/internal/config"
	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/integration/mailer"
	"github.com/futig/proposal-backend/internal/pkg/ratelimit"
	"github.com/futig/proposal-backend/internal/pkg/validator"
	"github.com/futig/proposal-backend/internal/repository"
	"github.com/futig/proposal-backend/internal/telegram"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthUsecase owns the credential lifecycle: registration, login, invites and password resets
type AuthUsecase struct {
	userRepo    repository.UserRepository
	tokenRepo   repository.TokenRepository
	signer      TokenSigner
	mailer      Mailer
	notifier    Notifier
	mailLimiter *ratelimit.Limiter
	cfg         config.AuthConfig
	hashCost    int
	now         func() time.Time
	logger      *zap.Logger
}

func NewUsecase(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	signer TokenSigner,
	mailer Mailer,
	notifier Notifier,
	cfg config.AuthConfig,
	logger *zap.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		signer:      signer,
		mailer:      mailer,
		notifier:    notifier,
		mailLimiter: ratelimit.NewLimiter(cfg.MailCooldown),
		cfg:         cfg,
		hashCost:    bcrypt.DefaultCost,
		now:         time.Now,
		logger:      logger,
	}
}

// Register creates a client account and signs the caller in
func (uc *AuthUsecase) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResult, error) {
	user, err := uc.createClient(ctx, validator.NormalizeEmail(req.Email), req.Password, req.FullName)
	if err != nil {
		return nil, err
	}

	if err := uc.mailer.Send(ctx, mailer.Welcome(user.Email, user.FullName)); err != nil {
		ctxzap.Warn(ctx, "failed to send welcome mail", zap.Error(err), zap.Int64("user_id", user.ID))
	}

	return uc.issue(user)
}

func (uc *AuthUsecase) Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, validator.NormalizeEmail(req.Email))
	if errors.Is(err, entity.ErrUserNotFound) {
		return nil, entity.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	ctxzap.Info(ctx, "user logged in", zap.Int64("user_id", user.ID))

	return uc.issue(user)
}

// InitiateRegistration mails a one-time registration link to an invited address
func (uc *AuthUsecase) InitiateRegistration(ctx context.Context, req *entity.InitiateRegistrationRequest) error {
	email := validator.NormalizeEmail(req.Email)

	_, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return entity.ErrEmailExists
	}
	if !errors.Is(err, entity.ErrUserNotFound) {
		return fmt.Errorf("get user: %w", err)
	}

	if wait, ok := uc.mailLimiter.Allow(mailKey(entity.TokenPurposeInvite, email)); !ok {
		return &entity.RateLimitError{RetryAfter: int64(math.Ceil(wait.Seconds()))}
	}

	var fullName *string
	if req.FullName != "" {
		fullName = &req.FullName
	}

	token, err := uc.newToken(ctx, email, fullName, entity.TokenPurposeInvite, uc.cfg.InviteTTL)
	if err != nil {
		return err
	}

	if err := uc.mailer.Send(ctx, mailer.Invite(email, uc.cfg.FrontendURL, token.Token)); err != nil {
		uc.mailLimiter.Reset(mailKey(entity.TokenPurposeInvite, email))
		return fmt.Errorf("send invite: %w", err)
	}

	ctxzap.Info(ctx, "registration invite sent", zap.String("email", email))
	return nil
}

// CompleteRegistration redeems an invite token for a new client account
func (uc *AuthUsecase) CompleteRegistration(ctx context.Context, req *entity.CompleteRegistrationRequest) (*entity.AuthResult, error) {
	token, err := uc.redeem(ctx, req.Token, entity.TokenPurposeInvite)
	if err != nil {
		return nil, err
	}

	fullName := req.FullName
	if fullName == "" && token.FullName != nil {
		fullName = *token.FullName
	}

	user, err := uc.createClient(ctx, token.Email, req.Password, fullName)
	if err != nil {
		return nil, err
	}

	if err := uc.tokenRepo.Delete(ctx, token.ID); err != nil {
		return nil, err
	}

	return uc.issue(user)
}

// RequestPasswordReset mails a reset link when the address belongs to a user.
// It reports success either way so callers cannot probe for accounts.
func (uc *AuthUsecase) RequestPasswordReset(ctx context.Context, req *entity.PasswordResetRequest) error {
	email := validator.NormalizeEmail(req.Email)

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, entity.ErrUserNotFound) {
		ctxzap.Info(ctx, "password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if _, ok := uc.mailLimiter.Allow(mailKey(entity.TokenPurposeReset, email)); !ok {
		ctxzap.Info(ctx, "password reset mail throttled", zap.Int64("user_id", user.ID))
		return nil
	}

	token, err := uc.newToken(ctx, email, nil, entity.TokenPurposeReset, uc.cfg.ResetTTL)
	if err != nil {
		return err
	}

	if err := uc.mailer.Send(ctx, mailer.PasswordReset(email, uc.cfg.FrontendURL, token.Token)); err != nil {
		uc.mailLimiter.Reset(mailKey(entity.TokenPurposeReset, email))
		ctxzap.Error(ctx, "failed to send password reset mail", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil
	}

	ctxzap.Info(ctx, "password reset mail sent", zap.Int64("user_id", user.ID))
	return nil
}

func (uc *AuthUsecase) ResetPassword(ctx context.Context, req *entity.ResetPasswordRequest) error {
	token, err := uc.redeem(ctx, req.Token, entity.TokenPurposeReset)
	if err != nil {
		return err
	}

	user, err := uc.userRepo.GetByEmail(ctx, token.Email)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), uc.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := uc.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	if err := uc.tokenRepo.Delete(ctx, token.ID); err != nil {
		return err
	}

	ctxzap.Info(ctx, "password reset", zap.Int64("user_id", user.ID))
	return nil
}

func (uc *AuthUsecase) createClient(ctx context.Context, email, password, fullName string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := uc.userRepo.Create(ctx, entity.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         entity.RoleClient,
	})
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "user registered", zap.Int64("user_id", user.ID))

	if err := uc.notifier.Notify(ctx, telegram.UserRegistered(user)); err != nil {
		ctxzap.Warn(ctx, "failed to notify admins about registration", zap.Error(err))
	}

	return user, nil
}

func (uc *AuthUsecase) newToken(ctx context.Context, email string, fullName *string, purpose entity.TokenPurpose, ttl time.Duration) (*entity.Token, error) {
	token, err := uc.tokenRepo.Replace(ctx, entity.Token{
		Email:     email,
		FullName:  fullName,
		Token:     uuid.NewString(),
		Purpose:   purpose,
		ExpiresAt: uc.now().Add(ttl),
	})
	if err != nil {
		return nil, fmt.Errorf("store %s token: %w", purpose, err)
	}
	return token, nil
}

// redeem loads a token and rejects it once expired. Expired tokens are removed.
func (uc *AuthUsecase) redeem(ctx context.Context, raw string, purpose entity.TokenPurpose) (*entity.Token, error) {
	token, err := uc.tokenRepo.Get(ctx, raw, purpose)
	if err != nil {
		return nil, err
	}

	if token.Expired(uc.now()) {
		if err := uc.tokenRepo.Delete(ctx, token.ID); err != nil {
			ctxzap.Warn(ctx, "failed to delete expired token", zap.Error(err))
		}
		return nil, entity.ErrTokenExpired
	}

	return token, nil
}

func (uc *AuthUsecase) issue(user *entity.User) (*entity.AuthResult, error) {
	signed, err := uc.signer.Sign(user)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &entity.AuthResult{Token: signed, User: user}, nil
}

func mailKey(purpose entity.TokenPurpose, email string) string {
	return string(purpose) + ":" + email
}
