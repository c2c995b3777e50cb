package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/padhaihub/tutorhub/internal/observability"
)

type HistoryRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewHistoryRepo(pool *pgxpool.Pool, prom *observability.Prom) *HistoryRepo {
	return &HistoryRepo{pool: pool, prom: prom}
}

func (r *HistoryRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Insert appends one exchange. The FK on user_id is the only referential
// check; the handlers never pre-verify it.
func (r *HistoryRepo) Insert(ctx context.Context, userID, question, answer string) error {
	return r.observe("history.insert", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO history (user_id, question, answer) VALUES ($1, $2, $3)`,
			userID, question, answer,
		)

		return err
	})
}

// ListQuestionsByUser returns only the question text, newest first.
// No pagination: the history endpoint exposes the full set.
func (r *HistoryRepo) ListQuestionsByUser(ctx context.Context, userID string) ([]string, error) {
	questions := make([]string, 0)

	err := r.observe("history.list_questions", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT question FROM history WHERE user_id = $1 ORDER BY created_at DESC`,
			userID,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var q string

			if err := rows.Scan(&q); err != nil {
				return err
			}

			questions = append(questions, q)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return questions, nil
}
