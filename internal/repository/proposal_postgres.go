package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProposalRepository defines the interface for proposal persistence
type ProposalRepository interface {
	GetByRequest(ctx context.Context, requestID int64) (*entity.Proposal, error)
	// UpsertGenerated stores freshly generated sections. A new proposal starts at
	// version 1; an existing one is overwritten, its version incremented and its
	// status reset to draft.
	UpsertGenerated(ctx context.Context, requestID int64, sections entity.ProposalSections, generatedAt time.Time) (*entity.Proposal, error)
	// Save applies a manual edit; nil fields keep their stored value.
	Save(ctx context.Context, req *entity.SaveProposalRequest) (*entity.Proposal, error)
}

var _ ProposalRepository = &ProposalPostgres{}

type ProposalPostgres struct {
	db *pgxpool.Pool
}

func NewProposalPostgres(db *pgxpool.Pool) *ProposalPostgres {
	return &ProposalPostgres{db: db}
}

func (r *ProposalPostgres) GetByRequest(ctx context.Context, requestID int64) (*entity.Proposal, error) {
	row := r.db.QueryRow(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE request_id = $1`, requestID)

	proposal, err := scanProposal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrProposalNotFound
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}

	return proposal, nil
}

func (r *ProposalPostgres) UpsertGenerated(
	ctx context.Context,
	requestID int64,
	sections entity.ProposalSections,
	generatedAt time.Time,
) (*entity.Proposal, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO proposals (
			request_id, project_overview, project_scope, timeline, budget,
			terms_and_conditions, next_steps, deliverables, compliance_requirements,
			version, status, last_generated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $11)
		ON CONFLICT ON CONSTRAINT proposals_request_key DO UPDATE SET
			project_overview        = EXCLUDED.project_overview,
			project_scope           = EXCLUDED.project_scope,
			timeline                = EXCLUDED.timeline,
			budget                  = EXCLUDED.budget,
			terms_and_conditions    = EXCLUDED.terms_and_conditions,
			next_steps              = EXCLUDED.next_steps,
			deliverables            = EXCLUDED.deliverables,
			compliance_requirements = EXCLUDED.compliance_requirements,
			version                 = proposals.version + 1,
			status                  = EXCLUDED.status,
			last_generated_at       = EXCLUDED.last_generated_at,
			updated_at              = NOW()
		RETURNING `+proposalColumns,
		requestID,
		sections.ProjectOverview, sections.ProjectScope, sections.Timeline, sections.Budget,
		sections.TermsAndConditions, sections.NextSteps, sections.Deliverables, sections.ComplianceRequirements,
		string(entity.ProposalStatusDraft), generatedAt,
	)

	proposal, err := scanProposal(row)
	if err != nil {
		if isForeignKeyViolation(err, "proposals_request_id_fkey") {
			return nil, entity.ErrRequestNotFound
		}
		return nil, fmt.Errorf("upsert generated proposal: %w", err)
	}

	return proposal, nil
}

func (r *ProposalPostgres) Save(ctx context.Context, req *entity.SaveProposalRequest) (*entity.Proposal, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO proposals (
			request_id, project_overview, project_scope, timeline, budget,
			terms_and_conditions, next_steps, deliverables, compliance_requirements,
			admin_notes, status, version
		)
		VALUES (
			$1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, ''),
			COALESCE($6, ''), COALESCE($7, ''), COALESCE($8, ''), COALESCE($9, ''),
			COALESCE($10, ''), COALESCE($11, 'draft'), COALESCE($12, 1)
		)
		ON CONFLICT ON CONSTRAINT proposals_request_key DO UPDATE SET
			project_overview        = COALESCE($2, proposals.project_overview),
			project_scope           = COALESCE($3, proposals.project_scope),
			timeline                = COALESCE($4, proposals.timeline),
			budget                  = COALESCE($5, proposals.budget),
			terms_and_conditions    = COALESCE($6, proposals.terms_and_conditions),
			next_steps              = COALESCE($7, proposals.next_steps),
			deliverables            = COALESCE($8, proposals.deliverables),
			compliance_requirements = COALESCE($9, proposals.compliance_requirements),
			admin_notes             = COALESCE($10, proposals.admin_notes),
			status                  = COALESCE($11, proposals.status),
			version                 = COALESCE($12, proposals.version),
			updated_at              = NOW()
		RETURNING `+proposalColumns,
		req.RequestID,
		req.ProjectOverview, req.ProjectScope, req.Timeline, req.Budget,
		req.TermsAndConditions, req.NextSteps, req.Deliverables, req.ComplianceRequirements,
		req.AdminNotes, optionalString(req.Status), req.Version,
	)

	proposal, err := scanProposal(row)
	if err != nil {
		if isForeignKeyViolation(err, "proposals_request_id_fkey") {
			return nil, entity.ErrRequestNotFound
		}
		return nil, fmt.Errorf("save proposal: %w", err)
	}

	return proposal, nil
}
