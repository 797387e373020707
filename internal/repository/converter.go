package repository

import (
	"github.com/futig/proposal-backend/internal/entity"
	"github.com/jackc/pgx/v5"
)

const (
	userColumns     = `id, email, password_hash, full_name, role, created_at, updated_at`
	requestColumns  = `id, user_id, project_name, status, created_at, updated_at`
	answerColumns   = `id, request_id, question_id, answer, created_at, updated_at`
	tokenColumns    = `id, email, full_name, token, purpose, expires_at`
	proposalColumns = `id, request_id, project_overview, project_scope, timeline, budget,
		terms_and_conditions, next_steps, deliverables, compliance_requirements,
		admin_notes, version, status, last_generated_at, created_at, updated_at`
	comparisonColumns = `id, request_id, timeline_industry_time, timeline_formit_time,
		budget_industry_cost, budget_formit_cost, timeline_justification, budget_justification,
		created_at, updated_at`
)

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}

func scanRequest(row pgx.Row) (*entity.Request, error) {
	var r entity.Request
	var status string
	if err := row.Scan(&r.ID, &r.UserID, &r.ProjectName, &status, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.Status = entity.RequestStatus(status)
	return &r, nil
}

func scanAnswer(row pgx.Row) (*entity.Answer, error) {
	var a entity.Answer
	if err := row.Scan(&a.ID, &a.RequestID, &a.QuestionID, &a.Answer, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanToken(row pgx.Row) (*entity.Token, error) {
	var t entity.Token
	var purpose string
	if err := row.Scan(&t.ID, &t.Email, &t.FullName, &t.Token, &purpose, &t.ExpiresAt); err != nil {
		return nil, err
	}
	t.Purpose = entity.TokenPurpose(purpose)
	return &t, nil
}

func scanProposal(row pgx.Row) (*entity.Proposal, error) {
	var p entity.Proposal
	var status string
	err := row.Scan(
		&p.ID, &p.RequestID,
		&p.ProjectOverview, &p.ProjectScope, &p.Timeline, &p.Budget,
		&p.TermsAndConditions, &p.NextSteps, &p.Deliverables, &p.ComplianceRequirements,
		&p.AdminNotes, &p.Version, &status, &p.LastGeneratedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = entity.ProposalStatus(status)
	return &p, nil
}

func scanComparison(row pgx.Row) (*entity.Comparison, error) {
	var c entity.Comparison
	err := row.Scan(
		&c.ID, &c.RequestID,
		&c.TimelineIndustryTime, &c.TimelineFormitTime,
		&c.BudgetIndustryCost, &c.BudgetFormitCost,
		&c.TimelineJustification, &c.BudgetJustification,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func optionalString[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
