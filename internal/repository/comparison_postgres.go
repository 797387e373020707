package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ComparisonRepository defines the interface for comparison persistence
type ComparisonRepository interface {
	GetByRequest(ctx context.Context, requestID int64) (*entity.Comparison, error)
	Upsert(ctx context.Context, requestID int64, estimates entity.ComparisonEstimates) (*entity.Comparison, error)
}

var _ ComparisonRepository = &ComparisonPostgres{}

type ComparisonPostgres struct {
	db *pgxpool.Pool
}

func NewComparisonPostgres(db *pgxpool.Pool) *ComparisonPostgres {
	return &ComparisonPostgres{db: db}
}

func (r *ComparisonPostgres) GetByRequest(ctx context.Context, requestID int64) (*entity.Comparison, error) {
	row := r.db.QueryRow(ctx, `SELECT `+comparisonColumns+` FROM comparisons WHERE request_id = $1`, requestID)

	comparison, err := scanComparison(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrComparisonNotFound
		}
		return nil, fmt.Errorf("get comparison: %w", err)
	}

	return comparison, nil
}

func (r *ComparisonPostgres) Upsert(ctx context.Context, requestID int64, e entity.ComparisonEstimates) (*entity.Comparison, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO comparisons (
			request_id, timeline_industry_time, timeline_formit_time,
			budget_industry_cost, budget_formit_cost,
			timeline_justification, budget_justification
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ON CONSTRAINT comparisons_request_key DO UPDATE SET
			timeline_industry_time = EXCLUDED.timeline_industry_time,
			timeline_formit_time   = EXCLUDED.timeline_formit_time,
			budget_industry_cost   = EXCLUDED.budget_industry_cost,
			budget_formit_cost     = EXCLUDED.budget_formit_cost,
			timeline_justification = EXCLUDED.timeline_justification,
			budget_justification   = EXCLUDED.budget_justification,
			updated_at             = NOW()
		RETURNING `+comparisonColumns,
		requestID,
		e.TimelineIndustryTime, e.TimelineFormitTime,
		e.BudgetIndustryCost, e.BudgetFormitCost,
		e.TimelineJustification, e.BudgetJustification,
	)

	comparison, err := scanComparison(row)
	if err != nil {
		if isForeignKeyViolation(err, "comparisons_request_id_fkey") {
			return nil, entity.ErrRequestNotFound
		}
		return nil, fmt.Errorf("upsert comparison: %w", err)
	}

	return comparison, nil
}
