package admin

import (
	"context"
	"testing"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReviewRepo struct {
	clients []*entity.ClientWithAnswers
}

func (f *fakeReviewRepo) ListClientsWithAnswers(context.Context) ([]*entity.ClientWithAnswers, error) {
	return f.clients, nil
}

func (f *fakeReviewRepo) GetUserWithAnswers(_ context.Context, userID int64) (*entity.ClientWithAnswers, error) {
	for _, c := range f.clients {
		if c.ID == userID {
			return c, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

type fakeUserRepo struct {
	users map[int64]*entity.User
}

func (f *fakeUserRepo) Create(context.Context, entity.User) (*entity.User, error) {
	panic("not used")
}

func (f *fakeUserRepo) GetByID(context.Context, int64) (*entity.User, error) {
	panic("not used")
}

func (f *fakeUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	panic("not used")
}

func (f *fakeUserRepo) UpdatePassword(context.Context, int64, string) error {
	panic("not used")
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id int64, role entity.Role) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	u.Role = role
	return u, nil
}

func newTestUsecase() *AdminUsecase {
	review := &fakeReviewRepo{clients: []*entity.ClientWithAnswers{
		{
			ID:    2,
			Email: "client@example.com",
			Requests: []*entity.RequestWithAnswers{{
				ID:          5,
				ProjectName: "website",
				Answers:     []*entity.AnswerWithQuestion{{QuestionID: 1, AnswerText: "E-commerce site", QuestionText: "What do you do?"}},
			}},
		},
	}}
	users := &fakeUserRepo{users: map[int64]*entity.User{
		1: {ID: 1, Email: "admin@example.com", Role: entity.RoleAdmin},
		2: {ID: 2, Email: "client@example.com", Role: entity.RoleClient},
	}}
	return NewUsecase(review, users, zap.NewNop())
}

var admin = &entity.Identity{UserID: 1, Role: entity.RoleAdmin}

func TestListAndGetForm(t *testing.T) {
	uc := newTestUsecase()
	ctx := context.Background()

	clients, err := uc.ListClientsWithAnswers(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "website", clients[0].Requests[0].ProjectName)

	form, err := uc.GetUserForm(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "E-commerce site", form.Requests[0].Answers[0].AnswerText)

	_, err = uc.GetUserForm(ctx, 42)
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}

func TestUpdateRole(t *testing.T) {
	uc := newTestUsecase()
	ctx := context.Background()

	user, err := uc.UpdateRole(ctx, admin, 2, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)

	_, err = uc.UpdateRole(ctx, admin, 1, entity.RoleClient)
	assert.ErrorIs(t, err, entity.ErrForbidden)

	_, err = uc.UpdateRole(ctx, admin, 42, entity.RoleClient)
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}
