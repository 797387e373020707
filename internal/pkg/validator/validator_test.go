package validator

import (
	"testing"

	"github.com/futig/proposal-backend/internal/config"
	"github.com/futig/proposal-backend/internal/entity"
	"github.com/stretchr/testify/assert"
)

func newTestValidator() *Validator {
	return NewValidator(config.AuthConfig{MinPasswordLen: 8})
}

func ptr[T any](v T) *T { return &v }

func TestValidateSaveAnswers(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name string
		req  entity.SaveAnswersRequest
		want error
	}{
		{
			name: "by request id",
			req:  entity.SaveAnswersRequest{RequestID: ptr(int64(1)), Answers: map[int64]string{1: "a"}},
		},
		{
			name: "by service type",
			req:  entity.SaveAnswersRequest{ServiceType: "website", Answers: map[int64]string{1: "a"}},
		},
		{
			name: "no target",
			req:  entity.SaveAnswersRequest{Answers: map[int64]string{1: "a"}},
			want: entity.ErrMissingField,
		},
		{
			name: "no answers",
			req:  entity.SaveAnswersRequest{ServiceType: "website"},
			want: entity.ErrMissingField,
		},
		{
			name: "bad question id",
			req:  entity.SaveAnswersRequest{ServiceType: "website", Answers: map[int64]string{-3: "a"}},
			want: entity.ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateSaveAnswers(&tt.req)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, entity.ErrValidation)
		})
	}
}

func TestValidateSaveProposal(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateSaveProposal(&entity.SaveProposalRequest{RequestID: 1}))
	assert.ErrorIs(t, v.ValidateSaveProposal(&entity.SaveProposalRequest{}), entity.ErrMissingField)

	bad := entity.ProposalStatus("archived")
	assert.ErrorIs(t, v.ValidateSaveProposal(&entity.SaveProposalRequest{RequestID: 1, Status: &bad}), entity.ErrInvalidParameter)
	assert.ErrorIs(t, v.ValidateSaveProposal(&entity.SaveProposalRequest{RequestID: 1, Version: ptr(0)}), entity.ErrInvalidParameter)
}

func TestValidateAuth(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateRegister(&entity.RegisterRequest{Email: "jane@example.com", Password: "longenough"}))
	assert.ErrorIs(t, v.ValidateRegister(&entity.RegisterRequest{Email: "not-an-email", Password: "longenough"}), entity.ErrInvalidParameter)
	assert.ErrorIs(t, v.ValidateRegister(&entity.RegisterRequest{Email: "Jane <jane@example.com>", Password: "longenough"}), entity.ErrInvalidParameter)
	assert.ErrorIs(t, v.ValidateRegister(&entity.RegisterRequest{Email: "jane@example.com", Password: "short"}), entity.ErrInvalidParameter)
	assert.ErrorIs(t, v.ValidateLogin(&entity.LoginRequest{Email: "jane@example.com"}), entity.ErrMissingField)
	assert.ErrorIs(t, v.ValidateCompleteRegistration(&entity.CompleteRegistrationRequest{Password: "longenough"}), entity.ErrMissingField)
	assert.ErrorIs(t, v.ValidateResetPassword(&entity.ResetPasswordRequest{Token: "t"}), entity.ErrMissingField)
	assert.ErrorIs(t, v.ValidateRole("owner"), entity.ErrInvalidParameter)

	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}
