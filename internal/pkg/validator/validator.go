package validator

import (
	"fmt"

	"github.com/futig/proposal-backend/internal/config"
	"github.com/futig/proposal-backend/internal/entity"
)

// Validator checks request payloads before they reach the usecases
type Validator struct {
	minPasswordLen int
}

func NewValidator(cfg config.AuthConfig) *Validator {
	return &Validator{minPasswordLen: cfg.MinPasswordLen}
}

// ValidateSaveAnswers validates an answer batch
func (v *Validator) ValidateSaveAnswers(req *entity.SaveAnswersRequest) error {
	if (req.RequestID == nil || *req.RequestID <= 0) && req.ServiceType == "" {
		return fmt.Errorf("%w: requestId or serviceType", entity.ErrMissingField)
	}
	if len(req.Answers) == 0 {
		return fmt.Errorf("%w: answers", entity.ErrMissingField)
	}
	for questionID := range req.Answers {
		if questionID <= 0 {
			return fmt.Errorf("%w: question id %d", entity.ErrInvalidParameter, questionID)
		}
	}

	return nil
}

func (v *Validator) ValidateRequestID(requestID int64) error {
	if requestID <= 0 {
		return fmt.Errorf("%w: requestId", entity.ErrMissingField)
	}
	return nil
}

// ValidateSaveProposal validates a manual proposal edit
func (v *Validator) ValidateSaveProposal(req *entity.SaveProposalRequest) error {
	if err := v.ValidateRequestID(req.RequestID); err != nil {
		return err
	}
	if req.Status != nil && !req.Status.IsValid() {
		return fmt.Errorf("%w: status %q", entity.ErrInvalidParameter, *req.Status)
	}
	if req.Version != nil && *req.Version < 1 {
		return fmt.Errorf("%w: version must be positive", entity.ErrInvalidParameter)
	}

	return nil
}

func (v *Validator) ValidateRole(role entity.Role) error {
	if !role.IsValid() {
		return fmt.Errorf("%w: role %q", entity.ErrInvalidParameter, role)
	}
	return nil
}
