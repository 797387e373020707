package formatter

import (
	"fmt"

	"github.com/futig/proposal-backend/internal/entity"
)

type Section struct {
	Heading string
	Body    string
}

// Document is a titled list of sections rendered by every formatter
type Document struct {
	Title    string
	Sections []Section
}

type Formatter interface {
	Format(doc *Document) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidFormat, format)
	}
}

// ProposalDocument lays out a proposal in reading order. Empty sections are skipped.
func ProposalDocument(p *entity.Proposal, projectName string) *Document {
	title := "Project Proposal"
	if projectName != "" {
		title = fmt.Sprintf("Project Proposal: %s", projectName)
	}

	all := []Section{
		{Heading: "Project Overview", Body: p.ProjectOverview},
		{Heading: "Project Scope", Body: p.ProjectScope},
		{Heading: "Deliverables", Body: p.Deliverables},
		{Heading: "Timeline", Body: p.Timeline},
		{Heading: "Budget", Body: p.Budget},
		{Heading: "Compliance Requirements", Body: p.ComplianceRequirements},
		{Heading: "Terms and Conditions", Body: p.TermsAndConditions},
		{Heading: "Next Steps", Body: p.NextSteps},
	}

	doc := &Document{Title: title}
	for _, s := range all {
		if s.Body != "" {
			doc.Sections = append(doc.Sections, s)
		}
	}
	return doc
}
