package repository

import (
	"context"
	"fmt"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WizardRepository reads the questionnaire catalog
type WizardRepository interface {
	// ListSteps returns steps with nested categories and questions. An empty
	// serviceType returns every step, otherwise general steps plus the matching ones.
	ListSteps(ctx context.Context, serviceType string) ([]*entity.WizardStep, error)
	ServiceTypeExists(ctx context.Context, serviceType string) (bool, error)
}

var _ WizardRepository = &WizardPostgres{}

type WizardPostgres struct {
	db *pgxpool.Pool
}

func NewWizardPostgres(db *pgxpool.Pool) *WizardPostgres {
	return &WizardPostgres{db: db}
}

func (r *WizardPostgres) ListSteps(ctx context.Context, serviceType string) ([]*entity.WizardStep, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.step_number, s.title, s.description, s.service_type,
		       c.id, c.title, c.description, c.sort_order,
		       q.id, q.question_text, q.question_type, q.is_required, q.help_text, q.sort_order
		FROM wizard_steps s
		LEFT JOIN categories c ON c.step_id = s.id
		LEFT JOIN questions q ON q.category_id = c.id
		WHERE $1 = '' OR s.service_type = $1 OR s.service_type = $2
		ORDER BY (s.service_type <> $2), s.service_type, s.step_number, s.id,
		         c.sort_order, c.id, q.sort_order, q.id`,
		serviceType, entity.ServiceTypeGeneral,
	)
	if err != nil {
		return nil, fmt.Errorf("list wizard steps: %w", err)
	}
	defer rows.Close()

	steps := make([]*entity.WizardStep, 0)
	var step *entity.WizardStep
	var category *entity.Category

	for rows.Next() {
		var s entity.WizardStep
		var (
			catID, qID          *int64
			catTitle, catDesc   *string
			catOrder, qOrder    *int32
			qText, qType, qHelp *string
			qRequired           *bool
		)
		if err := rows.Scan(
			&s.ID, &s.StepNumber, &s.Title, &s.Description, &s.ServiceType,
			&catID, &catTitle, &catDesc, &catOrder,
			&qID, &qText, &qType, &qRequired, &qHelp, &qOrder,
		); err != nil {
			return nil, fmt.Errorf("scan wizard step: %w", err)
		}

		if step == nil || step.ID != s.ID {
			s.Categories = make([]*entity.Category, 0)
			step = &s
			category = nil
			steps = append(steps, step)
		}

		if catID == nil {
			continue
		}
		if category == nil || category.ID != *catID {
			category = &entity.Category{
				ID:          *catID,
				StepID:      step.ID,
				Title:       *catTitle,
				Description: *catDesc,
				SortOrder:   int(*catOrder),
				Questions:   make([]*entity.Question, 0),
			}
			step.Categories = append(step.Categories, category)
		}

		if qID == nil {
			continue
		}
		category.Questions = append(category.Questions, &entity.Question{
			ID:           *qID,
			CategoryID:   category.ID,
			QuestionText: *qText,
			QuestionType: *qType,
			IsRequired:   *qRequired,
			HelpText:     *qHelp,
			SortOrder:    int(*qOrder),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wizard steps: %w", err)
	}

	return steps, nil
}

func (r *WizardPostgres) ServiceTypeExists(ctx context.Context, serviceType string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM wizard_steps WHERE service_type = $1)`,
		serviceType,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check service type: %w", err)
	}

	return exists, nil
}
