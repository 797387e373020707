package proposal

import (
	"fmt"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/pkg/llmjson"
)

// parseSections decodes a model reply into proposal sections.
// Every one of the eight keys must be present; empty strings are fine.
func parseSections(raw string) (entity.ProposalSections, error) {
	var out entity.LLMProposalOutput
	if err := llmjson.Decode(raw, &out); err != nil {
		return entity.ProposalSections{}, &entity.BadUpstreamOutputError{Raw: raw, Err: err}
	}

	fields := []struct {
		key   string
		value *string
	}{
		{"overview", out.Overview},
		{"scope", out.Scope},
		{"timeline", out.Timeline},
		{"budget", out.Budget},
		{"terms_and_conditions", out.TermsAndConditions},
		{"next_steps", out.NextSteps},
		{"deliverables", out.Deliverables},
		{"compliance_requirements", out.ComplianceRequirements},
	}
	for _, f := range fields {
		if f.value == nil {
			return entity.ProposalSections{}, &entity.BadUpstreamOutputError{
				Raw: raw,
				Err: fmt.Errorf("missing section %q", f.key),
			}
		}
	}

	return entity.ProposalSections{
		ProjectOverview:        *out.Overview,
		ProjectScope:           *out.Scope,
		Timeline:               *out.Timeline,
		Budget:                 *out.Budget,
		TermsAndConditions:     *out.TermsAndConditions,
		NextSteps:              *out.NextSteps,
		Deliverables:           *out.Deliverables,
		ComplianceRequirements: *out.ComplianceRequirements,
	}, nil
}
