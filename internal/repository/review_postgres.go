package repository

import (
	"context"
	"fmt"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReviewRepository builds the admin view of clients and their submitted answers
type ReviewRepository interface {
	ListClientsWithAnswers(ctx context.Context) ([]*entity.ClientWithAnswers, error)
	GetUserWithAnswers(ctx context.Context, userID int64) (*entity.ClientWithAnswers, error)
}

var _ ReviewRepository = &ReviewPostgres{}

type ReviewPostgres struct {
	db *pgxpool.Pool
}

func NewReviewPostgres(db *pgxpool.Pool) *ReviewPostgres {
	return &ReviewPostgres{db: db}
}

const reviewQuery = `
	SELECT u.id, u.email, u.full_name,
	       r.id, r.project_name, r.status,
	       a.question_id, a.answer, q.question_text
	FROM users u
	LEFT JOIN requests r ON r.user_id = u.id
	LEFT JOIN answers a ON a.request_id = r.id
	LEFT JOIN questions q ON q.id = a.question_id
	WHERE %s
	ORDER BY u.id, r.id, a.id`

func (r *ReviewPostgres) ListClientsWithAnswers(ctx context.Context) ([]*entity.ClientWithAnswers, error) {
	clients, err := r.query(ctx, fmt.Sprintf(reviewQuery, "u.role = $1"), string(entity.RoleClient))
	if err != nil {
		return nil, fmt.Errorf("list clients with answers: %w", err)
	}
	return clients, nil
}

func (r *ReviewPostgres) GetUserWithAnswers(ctx context.Context, userID int64) (*entity.ClientWithAnswers, error) {
	clients, err := r.query(ctx, fmt.Sprintf(reviewQuery, "u.id = $1"), userID)
	if err != nil {
		return nil, fmt.Errorf("get user with answers: %w", err)
	}
	if len(clients) == 0 {
		return nil, entity.ErrUserNotFound
	}
	return clients[0], nil
}

func (r *ReviewPostgres) query(ctx context.Context, sql string, args ...any) ([]*entity.ClientWithAnswers, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]*entity.ClientWithAnswers, 0)
	var client *entity.ClientWithAnswers
	var request *entity.RequestWithAnswers

	for rows.Next() {
		var (
			userID              int64
			email, fullName     string
			requestID           *int64
			projectName, status *string
			questionID          *int64
			answer, question    *string
		)
		if err := rows.Scan(
			&userID, &email, &fullName,
			&requestID, &projectName, &status,
			&questionID, &answer, &question,
		); err != nil {
			return nil, err
		}

		if client == nil || client.ID != userID {
			client = &entity.ClientWithAnswers{
				ID:       userID,
				Email:    email,
				FullName: fullName,
				Requests: make([]*entity.RequestWithAnswers, 0),
			}
			request = nil
			clients = append(clients, client)
		}

		if requestID == nil {
			continue
		}
		if request == nil || request.ID != *requestID {
			request = &entity.RequestWithAnswers{
				ID:          *requestID,
				ProjectName: *projectName,
				Status:      entity.RequestStatus(*status),
				Answers:     make([]*entity.AnswerWithQuestion, 0),
			}
			client.Requests = append(client.Requests, request)
		}

		if questionID == nil {
			continue
		}
		request.Answers = append(request.Answers, &entity.AnswerWithQuestion{
			QuestionID:   *questionID,
			AnswerText:   *answer,
			QuestionText: *question,
		})
	}

	return clients, rows.Err()
}
