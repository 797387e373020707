package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnswerRepository defines the interface for answer persistence
type AnswerRepository interface {
	// UpsertBatch writes all answers of a request in one transaction keyed by
	// (request, question). An unknown question id aborts the whole batch.
	UpsertBatch(ctx context.Context, requestID int64, answers map[int64]string) ([]*entity.Answer, error)
	ListWithQuestions(ctx context.Context, requestID int64) ([]*entity.AnswerWithQuestion, error)
}

var _ AnswerRepository = &AnswerPostgres{}

type AnswerPostgres struct {
	db *pgxpool.Pool
}

func NewAnswerPostgres(db *pgxpool.Pool) *AnswerPostgres {
	return &AnswerPostgres{db: db}
}

func (r *AnswerPostgres) UpsertBatch(ctx context.Context, requestID int64, answers map[int64]string) ([]*entity.Answer, error) {
	questionIDs := make([]int64, 0, len(answers))
	for id := range answers {
		questionIDs = append(questionIDs, id)
	}
	slices.Sort(questionIDs)

	var saved []*entity.Answer
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := checkQuestionsExist(ctx, tx, questionIDs); err != nil {
			return err
		}

		saved = make([]*entity.Answer, 0, len(questionIDs))
		for _, questionID := range questionIDs {
			row := tx.QueryRow(ctx, `
				INSERT INTO answers (request_id, question_id, answer)
				VALUES ($1, $2, $3)
				ON CONFLICT ON CONSTRAINT answers_request_question_key
				DO UPDATE SET answer = EXCLUDED.answer, updated_at = NOW()
				RETURNING `+answerColumns,
				requestID, questionID, answers[questionID],
			)

			answer, err := scanAnswer(row)
			if err != nil {
				if isForeignKeyViolation(err, "answers_request_id_fkey") {
					return entity.ErrRequestNotFound
				}
				return fmt.Errorf("upsert answer for question %d: %w", questionID, err)
			}
			saved = append(saved, answer)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

func checkQuestionsExist(ctx context.Context, db DBTX, questionIDs []int64) error {
	if len(questionIDs) == 0 {
		return nil
	}

	rows, err := db.Query(ctx, `SELECT id FROM questions WHERE id = ANY($1)`, questionIDs)
	if err != nil {
		return fmt.Errorf("check questions: %w", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return fmt.Errorf("check questions: %w", err)
	}

	for _, id := range questionIDs {
		if !slices.Contains(found, id) {
			return fmt.Errorf("%w: question id %d does not exist", entity.ErrUnknownQuestion, id)
		}
	}

	return nil
}

func (r *AnswerPostgres) ListWithQuestions(ctx context.Context, requestID int64) ([]*entity.AnswerWithQuestion, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.question_id, a.answer, q.question_text
		FROM answers a
		JOIN questions q ON q.id = a.question_id
		WHERE a.request_id = $1
		ORDER BY a.id`,
		requestID,
	)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	result := make([]*entity.AnswerWithQuestion, 0)
	for rows.Next() {
		var a entity.AnswerWithQuestion
		if err := rows.Scan(&a.QuestionID, &a.AnswerText, &a.QuestionText); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}

	return result, nil
}
