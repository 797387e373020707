package proposal

import (
	"context"
	"sync"
	"time"

	"github.com/futig/proposal-backend/internal/entity"
)

type fakeRequestRepo struct {
	requests map[int64]*entity.Request
}

func (f *fakeRequestRepo) Get(_ context.Context, id int64) (*entity.Request, error) {
	if r, ok := f.requests[id]; ok {
		return r, nil
	}
	return nil, entity.ErrRequestNotFound
}

func (f *fakeRequestRepo) FindOrCreate(context.Context, int64, string) (*entity.Request, error) {
	panic("not used")
}

type fakeAnswerRepo struct {
	answers map[int64][]*entity.AnswerWithQuestion
}

func (f *fakeAnswerRepo) UpsertBatch(context.Context, int64, map[int64]string) ([]*entity.Answer, error) {
	panic("not used")
}

func (f *fakeAnswerRepo) ListWithQuestions(_ context.Context, requestID int64) ([]*entity.AnswerWithQuestion, error) {
	return f.answers[requestID], nil
}

type fakeProposalRepo struct {
	mu        sync.Mutex
	proposals map[int64]*entity.Proposal
	writes    int
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{proposals: make(map[int64]*entity.Proposal)}
}

func (f *fakeProposalRepo) GetByRequest(_ context.Context, requestID int64) (*entity.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.proposals[requestID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, entity.ErrProposalNotFound
}

func (f *fakeProposalRepo) UpsertGenerated(_ context.Context, requestID int64, s entity.ProposalSections, at time.Time) (*entity.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++

	p, ok := f.proposals[requestID]
	if !ok {
		p = &entity.Proposal{ID: int64(len(f.proposals) + 1), RequestID: requestID}
		f.proposals[requestID] = p
	}
	p.ProposalSections = s
	p.Version++
	p.Status = entity.ProposalStatusDraft
	p.LastGeneratedAt = &at

	cp := *p
	return &cp, nil
}

func (f *fakeProposalRepo) Save(_ context.Context, req *entity.SaveProposalRequest) (*entity.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++

	p, ok := f.proposals[req.RequestID]
	if !ok {
		p = &entity.Proposal{ID: int64(len(f.proposals) + 1), RequestID: req.RequestID, Version: 1, Status: entity.ProposalStatusDraft}
		f.proposals[req.RequestID] = p
	}
	if req.ProjectOverview != nil {
		p.ProjectOverview = *req.ProjectOverview
	}
	if req.AdminNotes != nil {
		p.AdminNotes = *req.AdminNotes
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Version != nil {
		p.Version = *req.Version
	}

	cp := *p
	return &cp, nil
}

type fakeLLM struct {
	reply string
	err   error
	calls int
	last  *entity.LLMCompletionRequest
}

func (f *fakeLLM) Complete(_ context.Context, req *entity.LLMCompletionRequest) (string, error) {
	f.calls++
	f.last = req
	return f.reply, f.err
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Notify(_ context.Context, text string) error {
	f.messages = append(f.messages, text)
	return nil
}
