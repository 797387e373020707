package auth

import (
	"context"

	"github.com/futig/proposal-backend/internal/entity"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResult, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResult, error)
	InitiateRegistration(ctx context.Context, req *entity.InitiateRegistrationRequest) error
	CompleteRegistration(ctx context.Context, req *entity.CompleteRegistrationRequest) (*entity.AuthResult, error)
	RequestPasswordReset(ctx context.Context, req *entity.PasswordResetRequest) error
	ResetPassword(ctx context.Context, req *entity.ResetPasswordRequest) error
}
