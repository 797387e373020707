package entity

type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RawOutput string `json:"rawOutput,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// SaveAnswersRequest accepts either an existing request id or a service type
// used to find or create the caller's request.
type SaveAnswersRequest struct {
	RequestID   *int64           `json:"requestId,omitempty"`
	ServiceType string           `json:"serviceType,omitempty"`
	Answers     map[int64]string `json:"answers"`
}

type SaveAnswersResponse struct {
	Message   string    `json:"message"`
	Data      []*Answer `json:"data"`
	RequestID int64     `json:"requestId"`
}

type SaveAnswersResult struct {
	RequestID int64
	Answers   []*Answer
}

type ListAnswersResponse struct {
	CompletedAnswers []*AnswerWithQuestion `json:"completedAnswers"`
}

type FindOrCreateRequestRequest struct {
	ServiceType string `json:"serviceType"`
}

type FindOrCreateRequestResponse struct {
	RequestID   int64  `json:"requestId"`
	ServiceType string `json:"serviceType"`
}

type GenerateRequest struct {
	RequestID int64 `json:"requestId"`
}

type ProposalResponse struct {
	Proposal *Proposal `json:"proposal"`
}

// SaveProposalRequest is a manual admin edit; nil fields are left untouched
type SaveProposalRequest struct {
	RequestID              int64           `json:"requestId"`
	ProjectOverview        *string         `json:"projectOverview,omitempty"`
	ProjectScope           *string         `json:"projectScope,omitempty"`
	Timeline               *string         `json:"timeline,omitempty"`
	Budget                 *string         `json:"budget,omitempty"`
	TermsAndConditions     *string         `json:"termsAndConditions,omitempty"`
	NextSteps              *string         `json:"nextSteps,omitempty"`
	Deliverables           *string         `json:"deliverables,omitempty"`
	ComplianceRequirements *string         `json:"complianceRequirements,omitempty"`
	AdminNotes             *string         `json:"adminNotes,omitempty"`
	Status                 *ProposalStatus `json:"status,omitempty"`
	Version                *int            `json:"version,omitempty"`
}

type ComparisonResponse struct {
	Comparison *Comparison `json:"comparison"`
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type InitiateRegistrationRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
}

type CompleteRegistrationRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type UpdateRoleRequest struct {
	Role Role `json:"role"`
}

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user"`
}

type AuthResult struct {
	Token string
	User  *User
}

// ExportedFile is a rendered proposal ready to be downloaded
type ExportedFile struct {
	Content     []byte
	ContentType string
	FileName    string
}
