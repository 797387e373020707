package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/pkg/logger"
	"github.com/futig/proposal-backend/internal/pkg/response"
	"github.com/futig/proposal-backend/internal/pkg/token"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type identityCtxKey struct{}

// TokenVerifier turns a bearer token into the caller identity
type TokenVerifier interface {
	Verify(raw string) (*entity.Identity, error)
}

// IdentityFromContext returns the authenticated caller, or nil for anonymous requests
func IdentityFromContext(ctx context.Context) *entity.Identity {
	identity, _ := ctx.Value(identityCtxKey{}).(*entity.Identity)
	return identity
}

func WithIdentity(ctx context.Context, identity *entity.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

// Authenticate attaches the caller identity when a valid bearer token is present.
// A token that fails verification leaves the request anonymous; RequireAuth and RequireRole
// reject it where a caller is needed.
func Authenticate(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := verifier.Verify(raw)
			if err != nil {
				ctxzap.Debug(r.Context(), "ignoring invalid bearer token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			ctx = logger.WithIdentity(ctx, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromContext(r.Context()) == nil {
			response.HandleError(r.Context(), w, entity.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects callers that hold none of roles
func RequireRole(roles ...entity.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := token.RequireRole(IdentityFromContext(r.Context()), roles...); err != nil {
				response.HandleError(r.Context(), w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	scheme, raw, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}
