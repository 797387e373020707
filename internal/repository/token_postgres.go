package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TokenRepository stores invite and password reset tokens
type TokenRepository interface {
	// Replace drops earlier tokens of the same email and purpose and stores the new one
	Replace(ctx context.Context, token entity.Token) (*entity.Token, error)
	Get(ctx context.Context, token string, purpose entity.TokenPurpose) (*entity.Token, error)
	Delete(ctx context.Context, id int64) error
}

var _ TokenRepository = &TokenPostgres{}

type TokenPostgres struct {
	db *pgxpool.Pool
}

func NewTokenPostgres(db *pgxpool.Pool) *TokenPostgres {
	return &TokenPostgres{db: db}
}

func (r *TokenPostgres) Replace(ctx context.Context, token entity.Token) (*entity.Token, error) {
	var stored *entity.Token
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`DELETE FROM tokens WHERE email = $1 AND purpose = $2`,
			token.Email, string(token.Purpose),
		)
		if err != nil {
			return fmt.Errorf("delete previous tokens: %w", err)
		}

		row := tx.QueryRow(ctx, `
			INSERT INTO tokens (email, full_name, token, purpose, expires_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+tokenColumns,
			token.Email, token.FullName, token.Token, string(token.Purpose), token.ExpiresAt,
		)
		stored, err = scanToken(row)
		if err != nil {
			return fmt.Errorf("insert token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return stored, nil
}

func (r *TokenPostgres) Get(ctx context.Context, token string, purpose entity.TokenPurpose) (*entity.Token, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+tokenColumns+` FROM tokens WHERE token = $1 AND purpose = $2`,
		token, string(purpose),
	)

	t, err := scanToken(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrTokenNotFound
		}
		return nil, fmt.Errorf("get token: %w", err)
	}

	return t, nil
}

func (r *TokenPostgres) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM tokens WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
