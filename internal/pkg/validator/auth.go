package validator

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/futig/proposal-backend/internal/entity"
)

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (v *Validator) ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email", entity.ErrMissingField)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: email %q", entity.ErrInvalidParameter, email)
	}
	return nil
}

func (v *Validator) ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password", entity.ErrMissingField)
	}
	if len(password) < v.minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", entity.ErrInvalidParameter, v.minPasswordLen)
	}
	return nil
}

func (v *Validator) ValidateRegister(req *entity.RegisterRequest) error {
	if err := v.ValidateEmail(req.Email); err != nil {
		return err
	}
	return v.ValidatePassword(req.Password)
}

func (v *Validator) ValidateLogin(req *entity.LoginRequest) error {
	if req.Email == "" {
		return fmt.Errorf("%w: email", entity.ErrMissingField)
	}
	if req.Password == "" {
		return fmt.Errorf("%w: password", entity.ErrMissingField)
	}
	return nil
}

func (v *Validator) ValidateCompleteRegistration(req *entity.CompleteRegistrationRequest) error {
	if req.Token == "" {
		return fmt.Errorf("%w: token", entity.ErrMissingField)
	}
	return v.ValidatePassword(req.Password)
}

func (v *Validator) ValidateResetPassword(req *entity.ResetPasswordRequest) error {
	if req.Token == "" {
		return fmt.Errorf("%w: token", entity.ErrMissingField)
	}
	return v.ValidatePassword(req.NewPassword)
}
