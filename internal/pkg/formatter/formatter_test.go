package formatter

import (
	"bytes"
	"testing"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProposal() *entity.Proposal {
	return &entity.Proposal{
		RequestID: 1,
		ProposalSections: entity.ProposalSections{
			ProjectOverview: "Build CRM",
			ProjectScope:    "6 modules",
			Timeline:        "3 months",
		},
	}
}

func TestProposalDocumentSkipsEmptySections(t *testing.T) {
	doc := ProposalDocument(testProposal(), "website")

	assert.Equal(t, "Project Proposal: website", doc.Title)
	require.Len(t, doc.Sections, 3)
	assert.Equal(t, "Project Overview", doc.Sections[0].Heading)
	assert.Equal(t, "Timeline", doc.Sections[2].Heading)

	assert.Equal(t, "Project Proposal", ProposalDocument(testProposal(), "").Title)
}

func TestFactory(t *testing.T) {
	f := NewFactory()
	doc := ProposalDocument(testProposal(), "crm")

	tests := []struct {
		format      entity.ResultFormat
		contentType string
		ext         string
		magic       []byte
	}{
		{entity.FormatMarkdown, markdownContentType, ".md", []byte("# Project Proposal: crm")},
		{entity.FormatPDF, pdfContentType, ".pdf", []byte("%PDF")},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			fm, err := f.Create(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.contentType, fm.ContentType())
			assert.Equal(t, tt.ext, fm.FileExtension())

			out, err := fm.Format(doc)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, tt.magic))
		})
	}

	docx, err := f.Create(entity.FormatDOCX)
	require.NoError(t, err)
	assert.Equal(t, docxContentType, docx.ContentType())
	assert.Equal(t, ".docx", docx.FileExtension())

	_, err = f.Create("html")
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(ProposalDocument(testProposal(), ""))
	require.NoError(t, err)

	md := string(out)
	assert.Contains(t, md, "## Project Overview\n\nBuild CRM\n")
	assert.Contains(t, md, "## Project Scope\n\n6 modules\n")
	assert.NotContains(t, md, "Budget")
}
