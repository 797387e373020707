package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RequestRepository defines the interface for request persistence
type RequestRepository interface {
	Get(ctx context.Context, id int64) (*entity.Request, error)
	// FindOrCreate returns the caller's request for a service type, creating a
	// draft one when none exists. Concurrent calls resolve to the same row.
	FindOrCreate(ctx context.Context, userID int64, serviceType string) (*entity.Request, error)
}

var _ RequestRepository = &RequestPostgres{}

type RequestPostgres struct {
	db *pgxpool.Pool
}

func NewRequestPostgres(db *pgxpool.Pool) *RequestPostgres {
	return &RequestPostgres{db: db}
}

func (r *RequestPostgres) Get(ctx context.Context, id int64) (*entity.Request, error) {
	row := r.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1`, id)

	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrRequestNotFound
		}
		return nil, fmt.Errorf("get request: %w", err)
	}

	return req, nil
}

func (r *RequestPostgres) FindOrCreate(ctx context.Context, userID int64, serviceType string) (*entity.Request, error) {
	// The no-op update makes RETURNING yield the existing row on conflict
	row := r.db.QueryRow(ctx, `
		INSERT INTO requests (user_id, project_name, status)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT requests_user_project_key
		DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING `+requestColumns,
		userID, serviceType, string(entity.RequestStatusDraft),
	)

	req, err := scanRequest(row)
	if err != nil {
		if isForeignKeyViolation(err, "") {
			return nil, entity.ErrUserNotFound
		}
		return nil, fmt.Errorf("find or create request: %w", err)
	}

	return req, nil
}
