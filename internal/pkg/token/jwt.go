package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/futig/proposal-backend/internal/entity"
	jwt "github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Email string      `json:"email"`
	Role  entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies bearer tokens
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Sign issues a token for user
func (m *Manager) Sign(user *entity.User) (string, error) {
	now := m.now()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify parses raw and returns the identity it carries
func (m *Manager) Verify(raw string) (*entity.Identity, error) {
	t, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrUnauthorized, err)
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, fmt.Errorf("%w: invalid token", entity.ErrUnauthorized)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subject", entity.ErrUnauthorized)
	}

	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role", entity.ErrUnauthorized)
	}

	return &entity.Identity{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// RequireRole passes when identity holds one of roles
func RequireRole(identity *entity.Identity, roles ...entity.Role) error {
	if identity == nil {
		return entity.ErrUnauthorized
	}

	for _, r := range roles {
		if identity.Role == r {
			return nil
		}
	}

	return errors.Join(entity.ErrForbidden, fmt.Errorf("role %q is not allowed", identity.Role))
}
