package comparison

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/futig/proposal-backend/internal/api/middleware"
	"github.com/futig/proposal-backend/internal/config"
	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct{}

func (fakeUsecase) Generate(_ context.Context, requestID int64) (*entity.Comparison, error) {
	switch requestID {
	case 7:
		return &entity.Comparison{ID: 1, RequestID: 7, ComparisonEstimates: entity.ComparisonEstimates{
			TimelineIndustryTime: "24 weeks",
			TimelineFormitTime:   "10 weeks",
			BudgetIndustryCost:   "$120,000",
			BudgetFormitCost:     "$45,000",
		}}, nil
	case 8:
		return nil, &entity.BadUpstreamOutputError{Raw: "not json", Err: errors.New("decode json")}
	default:
		return nil, entity.ErrProposalNotFound
	}
}

func (fakeUsecase) Get(_ context.Context, requestID int64) (*entity.Comparison, error) {
	if requestID != 7 {
		return nil, entity.ErrComparisonNotFound
	}
	return &entity.Comparison{ID: 1, RequestID: 7}, nil
}

func newRouter(identity *entity.Identity) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if identity != nil {
				req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
			}
			next.ServeHTTP(w, req)
		})
	})
	RegisterRoutes(r, NewHandler(fakeUsecase{}, validator.NewValidator(config.AuthConfig{MinPasswordLen: 8})))
	return r
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/comparisons/generate-comparison", strings.NewReader(body)))
	return rec
}

func TestGenerateComparison(t *testing.T) {
	h := newRouter(&entity.Identity{UserID: 1, Role: entity.RoleAdmin})

	rec := post(h, `{"requestId":7}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp entity.ComparisonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "10 weeks", resp.Comparison.TimelineFormitTime)
	assert.Equal(t, "$45,000", resp.Comparison.BudgetFormitCost)

	rec = post(h, `{"requestId":9}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var errResp entity.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "No proposal found for this request", errResp.Message)

	rec = post(h, `{"requestId":8}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "not json", errResp.RawOutput)

	assert.Equal(t, http.StatusBadRequest, post(h, `{}`).Code)
	assert.Equal(t, http.StatusUnauthorized, post(newRouter(nil), `{"requestId":7}`).Code)
}

func TestGetComparison(t *testing.T) {
	h := newRouter(&entity.Identity{UserID: 1, Role: entity.RoleClient})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/comparisons/7", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/comparisons/3", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
