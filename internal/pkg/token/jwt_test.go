package token

import (
	"testing"
	"time"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerSignAndVerify(t *testing.T) {
	m := NewManager("test-secret-0123456789", time.Hour)

	raw, err := m.Sign(&entity.User{ID: 42, Email: "client@example.com", Role: entity.RoleClient})
	require.NoError(t, err)

	identity, err := m.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.UserID)
	assert.Equal(t, "client@example.com", identity.Email)
	assert.Equal(t, entity.RoleClient, identity.Role)
}

func TestManagerVerifyRejects(t *testing.T) {
	m := NewManager("test-secret-0123456789", time.Hour)
	raw, err := m.Sign(&entity.User{ID: 1, Email: "a@example.com", Role: entity.RoleAdmin})
	require.NoError(t, err)

	tests := []struct {
		name    string
		manager *Manager
		raw     string
	}{
		{name: "garbage", manager: m, raw: "not-a-token"},
		{name: "wrong secret", manager: NewManager("another-secret-0123456789", time.Hour), raw: raw},
		{
			name: "expired",
			manager: func() *Manager {
				late := NewManager("test-secret-0123456789", time.Hour)
				late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
				return late
			}(),
			raw: raw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.manager.Verify(tt.raw)
			assert.ErrorIs(t, err, entity.ErrUnauthorized)
		})
	}
}

func TestRequireRole(t *testing.T) {
	admin := &entity.Identity{UserID: 1, Role: entity.RoleAdmin}
	client := &entity.Identity{UserID: 2, Role: entity.RoleClient}

	assert.NoError(t, RequireRole(admin, entity.RoleAdmin))
	assert.NoError(t, RequireRole(client, entity.RoleClient, entity.RoleAdmin))
	assert.ErrorIs(t, RequireRole(client, entity.RoleAdmin), entity.ErrForbidden)
	assert.ErrorIs(t, RequireRole(nil, entity.RoleAdmin), entity.ErrUnauthorized)
}
