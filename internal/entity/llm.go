package entity

// LLMTask tells connectors which kind of document a completion should produce
type LLMTask string

const (
	LLMTaskProposal   LLMTask = "proposal"
	LLMTaskComparison LLMTask = "comparison"
)

type LLMMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type LLMCompletionRequest struct {
	Task        LLMTask      `json:"-"`
	Messages    []LLMMessage `json:"messages"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
	Temperature float64      `json:"temperature"`
}

// LLMChatRequest is the wire format of an OpenAI compatible chat completion call
type LLMChatRequest struct {
	Model          string             `json:"model"`
	Messages       []LLMMessage       `json:"messages"`
	MaxTokens      int                `json:"max_tokens,omitempty"`
	Temperature    float64            `json:"temperature"`
	ResponseFormat *LLMResponseFormat `json:"response_format,omitempty"`
}

type LLMResponseFormat struct {
	Type string `json:"type"`
}

type LLMChatChoice struct {
	Index        int        `json:"index"`
	Message      LLMMessage `json:"message"`
	FinishReason string     `json:"finish_reason"`
}

type LLMUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type LLMChatResponse struct {
	ID      string          `json:"id"`
	Model   string          `json:"model"`
	Choices []LLMChatChoice `json:"choices"`
	Usage   LLMUsage        `json:"usage"`
}

// LLMProposalOutput is the JSON document the model must return for a proposal.
// Pointers distinguish an omitted section from an empty one.
type LLMProposalOutput struct {
	Overview               *string `json:"overview"`
	Scope                  *string `json:"scope"`
	Timeline               *string `json:"timeline"`
	Budget                 *string `json:"budget"`
	TermsAndConditions     *string `json:"terms_and_conditions"`
	NextSteps              *string `json:"next_steps"`
	Deliverables           *string `json:"deliverables"`
	ComplianceRequirements *string `json:"compliance_requirements"`
}

type LLMEstimate struct {
	Time string `json:"time,omitempty"`
	Cost string `json:"cost,omitempty"`
}

type LLMEstimateBlock struct {
	IndustryEstimate *LLMEstimate `json:"industry_estimate"`
	FormitEstimate   *LLMEstimate `json:"formit_estimate"`
	Justification    string       `json:"justification"`
}

// LLMComparisonOutput is the JSON document the model must return for a comparison
type LLMComparisonOutput struct {
	Timeline *LLMEstimateBlock `json:"timeline"`
	Budget   *LLMEstimateBlock `json:"budget"`
}
