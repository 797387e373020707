package telegram

import (
	"fmt"

	"github.com/futig/proposal-backend/internal/entity"
)

const (
	msgProposalGenerated = `📄 Proposal generated

Request: #%d
Version: %d
Status: %s`

	msgComparisonGenerated = `📊 Comparison generated

Request: #%d
Timeline: %s (industry) vs %s (accelerated)
Budget: %s (industry) vs %s (accelerated)`

	msgUserRegistered = `👤 New client registered

Email: %s
Name: %s`
)

func ProposalGenerated(p *entity.Proposal) string {
	return fmt.Sprintf(msgProposalGenerated, p.RequestID, p.Version, p.Status)
}

func ComparisonGenerated(c *entity.Comparison) string {
	return fmt.Sprintf(msgComparisonGenerated,
		c.RequestID,
		orNA(c.TimelineIndustryTime), orNA(c.TimelineFormitTime),
		orNA(c.BudgetIndustryCost), orNA(c.BudgetFormitCost),
	)
}

func UserRegistered(u *entity.User) string {
	return fmt.Sprintf(msgUserRegistered, u.Email, orNA(u.FullName))
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
