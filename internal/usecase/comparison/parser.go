package comparison

import (
	"errors"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/pkg/llmjson"
)

// parseEstimates decodes a model reply into comparison estimates. Both
// timelines and both budgets must be present and non-empty.
func parseEstimates(raw string) (entity.ComparisonEstimates, error) {
	var out entity.LLMComparisonOutput
	if err := llmjson.Decode(raw, &out); err != nil {
		return entity.ComparisonEstimates{}, &entity.BadUpstreamOutputError{Raw: raw, Err: err}
	}

	bad := func(msg string) error {
		return &entity.BadUpstreamOutputError{Raw: raw, Err: errors.New(msg)}
	}

	if out.Timeline == nil || out.Timeline.IndustryEstimate == nil || out.Timeline.FormitEstimate == nil {
		return entity.ComparisonEstimates{}, bad("missing timeline estimates")
	}
	if out.Budget == nil || out.Budget.IndustryEstimate == nil || out.Budget.FormitEstimate == nil {
		return entity.ComparisonEstimates{}, bad("missing budget estimates")
	}

	e := entity.ComparisonEstimates{
		TimelineIndustryTime:  out.Timeline.IndustryEstimate.Time,
		TimelineFormitTime:    out.Timeline.FormitEstimate.Time,
		BudgetIndustryCost:    out.Budget.IndustryEstimate.Cost,
		BudgetFormitCost:      out.Budget.FormitEstimate.Cost,
		TimelineJustification: out.Timeline.Justification,
		BudgetJustification:   out.Budget.Justification,
	}
	if e.TimelineIndustryTime == "" || e.TimelineFormitTime == "" {
		return entity.ComparisonEstimates{}, bad("empty timeline estimate")
	}
	if e.BudgetIndustryCost == "" || e.BudgetFormitCost == "" {
		return entity.ComparisonEstimates{}, bad("empty budget estimate")
	}

	return e, nil
}
