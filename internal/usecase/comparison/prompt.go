package comparison

import (
	"fmt"

	"github.com/futig/proposal-backend/internal/entity"
)

const systemPromptTemplate = `You are a senior project manager and cost/timeline estimation expert specializing in U.S. software development. Your task is to produce a detailed comparative estimate.

First, analyze the project details below and estimate industry-standard averages for cost and time based on real-world data for similar software projects:
- Project Overview: %s
- Scope: %s
- Compliance Requirements: %s

Then explain how a streamlined, AI-enhanced delivery process can ship the same project faster and at a lower cost.

Respond with a single JSON object and nothing else, shaped exactly like this:
{
  "timeline": { "industry_estimate": { "time": "X weeks", "cost": "$Y" }, "formit_estimate": { "time": "A weeks", "cost": "$B" }, "justification": "..." },
  "budget": { "industry_estimate": { "cost": "$Y" }, "formit_estimate": { "cost": "$B" }, "justification": "..." }
}

- Base the estimates on real-world averages for software projects in the U.S.
- Derive them from the Scope and Project Overview.
- Explain why AI-driven development reduces time and cost (AI-assisted coding, automated testing, cloud deployment).`

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func buildMessages(p *entity.Proposal) []entity.LLMMessage {
	return []entity.LLMMessage{
		{
			Role: "system",
			Content: fmt.Sprintf(systemPromptTemplate,
				orDefault(p.ProjectOverview, "Not specified"),
				orDefault(p.ProjectScope, "Not specified"),
				orDefault(p.ComplianceRequirements, "None specified"),
			),
		},
	}
}
