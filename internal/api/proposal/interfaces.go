package proposal

import (
	"context"

	"github.com/futig/proposal-backend/internal/entity"
)

type ProposalUsecase interface {
	Generate(ctx context.Context, requestID int64) (*entity.Proposal, error)
	Get(ctx context.Context, requestID int64) (*entity.Proposal, error)
	Save(ctx context.Context, req *entity.SaveProposalRequest) (*entity.Proposal, error)
	Export(ctx context.Context, requestID int64, format entity.ResultFormat) (*entity.ExportedFile, error)
}
