package proposal

import (
	"fmt"
	"strings"

	"github.com/futig/proposal-backend/internal/entity"
)

const systemPrompt = `You are a senior software consultant preparing a cost-effective project proposal for a client.
Write concise but thorough content: short paragraphs and bullet points where they help.`

const instructionPrompt = `Based on the client answers above, generate the project proposal.

Respond with a single JSON object and nothing else. It must contain exactly these eight string keys:
"overview", "scope", "timeline", "budget", "terms_and_conditions", "next_steps", "deliverables", "compliance_requirements".
If a section does not apply, set it to an empty string. Do not omit any key and do not add other keys.`

// buildAnswersBlock renders every answer as a question/answer pair in the given order
func buildAnswersBlock(answers []*entity.AnswerWithQuestion) string {
	var b strings.Builder
	for i, a := range answers {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Question: %s\nAnswer: %s", a.QuestionText, a.AnswerText)
	}
	return b.String()
}

func buildMessages(answers []*entity.AnswerWithQuestion) []entity.LLMMessage {
	return []entity.LLMMessage{
		{Role: "system", Content: systemPrompt},
		{
			Role:    "user",
			Content: "Client answers:\n\n" + buildAnswersBlock(answers) + "\n\n" + instructionPrompt,
		},
	}
}
