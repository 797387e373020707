package entity

import (
	"time"
)

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleAdmin:
		return true
	default:
		return false
	}
}

// ServiceTypeGeneral marks wizard steps shown for every service type
const ServiceTypeGeneral = "general"

type RequestStatus string

const (
	RequestStatusDraft     RequestStatus = "draft"
	RequestStatusSubmitted RequestStatus = "submitted"
)

type ProposalStatus string

const (
	ProposalStatusDraft     ProposalStatus = "draft"
	ProposalStatusSubmitted ProposalStatus = "submitted"
	ProposalStatusApproved  ProposalStatus = "approved"
)

func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusDraft, ProposalStatusSubmitted, ProposalStatusApproved:
		return true
	default:
		return false
	}
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type WizardStep struct {
	ID          int64       `json:"id"`
	StepNumber  int         `json:"stepNumber"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ServiceType string      `json:"serviceType"`
	Categories  []*Category `json:"categories"`
}

type Category struct {
	ID          int64       `json:"id"`
	StepID      int64       `json:"stepId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	SortOrder   int         `json:"sortOrder"`
	Questions   []*Question `json:"questions"`
}

type Question struct {
	ID           int64  `json:"id"`
	CategoryID   int64  `json:"categoryId"`
	QuestionText string `json:"questionText"`
	QuestionType string `json:"questionType"`
	IsRequired   bool   `json:"isRequired"`
	HelpText     string `json:"helpText"`
	SortOrder    int    `json:"sortOrder"`
}

type Request struct {
	ID          int64         `json:"id"`
	UserID      *int64        `json:"userId,omitempty"`
	ProjectName string        `json:"projectName"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type Answer struct {
	ID         int64     `json:"id"`
	RequestID  int64     `json:"requestId"`
	QuestionID int64     `json:"questionId"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AnswerWithQuestion is an answer joined to the text of its question
type AnswerWithQuestion struct {
	QuestionID   int64  `json:"questionId"`
	AnswerText   string `json:"answerText"`
	QuestionText string `json:"questionText"`
}

// ProposalSections holds the generated free-text parts of a proposal
type ProposalSections struct {
	ProjectOverview        string `json:"projectOverview"`
	ProjectScope           string `json:"projectScope"`
	Timeline               string `json:"timeline"`
	Budget                 string `json:"budget"`
	TermsAndConditions     string `json:"termsAndConditions"`
	NextSteps              string `json:"nextSteps"`
	Deliverables           string `json:"deliverables"`
	ComplianceRequirements string `json:"complianceRequirements"`
}

type Proposal struct {
	ID        int64 `json:"id"`
	RequestID int64 `json:"requestId"`
	ProposalSections
	AdminNotes      string         `json:"adminNotes"`
	Version         int            `json:"version"`
	Status          ProposalStatus `json:"status"`
	LastGeneratedAt *time.Time     `json:"lastGeneratedAt,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// ComparisonEstimates holds industry vs accelerated delivery estimates
type ComparisonEstimates struct {
	TimelineIndustryTime  string `json:"timelineIndustryTime"`
	TimelineFormitTime    string `json:"timelineFormitTime"`
	BudgetIndustryCost    string `json:"budgetIndustryCost"`
	BudgetFormitCost      string `json:"budgetFormitCost"`
	TimelineJustification string `json:"timelineJustification"`
	BudgetJustification   string `json:"budgetJustification"`
}

type Comparison struct {
	ID        int64 `json:"id"`
	RequestID int64 `json:"requestId"`
	ComparisonEstimates
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TokenPurpose string

const (
	TokenPurposeInvite TokenPurpose = "invite"
	TokenPurposeReset  TokenPurpose = "reset"
)

// Token is a short-lived credential for invite and password reset flows
type Token struct {
	ID        int64        `json:"id"`
	Email     string       `json:"email"`
	FullName  *string      `json:"fullName,omitempty"`
	Token     string       `json:"-"`
	Purpose   TokenPurpose `json:"purpose"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Identity is the authenticated caller extracted from a bearer token
type Identity struct {
	UserID int64
	Email  string
	Role   Role
}

// ClientWithAnswers is the admin review view of a client and their requests
type ClientWithAnswers struct {
	ID       int64                 `json:"id"`
	Email    string                `json:"email"`
	FullName string                `json:"fullName"`
	Requests []*RequestWithAnswers `json:"requests"`
}

type RequestWithAnswers struct {
	ID          int64                 `json:"id"`
	ProjectName string                `json:"projectName"`
	Status      RequestStatus         `json:"status"`
	Answers     []*AnswerWithQuestion `json:"answers"`
}
