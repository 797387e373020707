package params

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/go-chi/chi/v5"
)

// ID parses a positive integer identifier
func ID(value, name string) (int64, error) {
	if value == "" {
		return 0, fmt.Errorf("%w: %s", entity.ErrMissingField, name)
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", entity.ErrInvalidParameter, name)
	}
	return id, nil
}

func QueryID(r *http.Request, name string) (int64, error) {
	return ID(r.URL.Query().Get(name), name)
}

func PathID(r *http.Request, name string) (int64, error) {
	return ID(chi.URLParam(r, name), name)
}
