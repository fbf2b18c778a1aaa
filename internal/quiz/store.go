package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcq-quiz/backend/internal/models"
)

// ErrNotFound is returned when a quiz set does not exist for the caller.
var ErrNotFound = errors.New("quiz set not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateQuizSet(ctx context.Context, set *models.QuizSet) error {
	questionsJSON, err := json.Marshal(set.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`INSERT INTO quiz_sets (client_id, topic, raw_text, normalized_text, structured, question_count, questions_json, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		set.ClientID, set.Topic, set.RawText, set.Normalized, set.Structured,
		set.QuestionCount, string(questionsJSON), set.CreatedAt,
	).Scan(&set.ID)
	if err != nil {
		return fmt.Errorf("create quiz set: %w", err)
	}
	return nil
}

func (s *Store) GetQuizSet(ctx context.Context, clientID string, id int64) (*models.QuizSet, error) {
	var set models.QuizSet
	var questionsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, client_id, topic, raw_text, normalized_text, structured, question_count, questions_json, created_at
		 FROM quiz_sets WHERE id = $1 AND client_id = $2`,
		id, clientID,
	).Scan(&set.ID, &set.ClientID, &set.Topic, &set.RawText, &set.Normalized,
		&set.Structured, &set.QuestionCount, &questionsJSON, &set.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get quiz set: %w", err)
	}

	if err := json.Unmarshal([]byte(questionsJSON), &set.Questions); err != nil {
		return nil, fmt.Errorf("decode questions for quiz set %d: %w", id, err)
	}
	return &set, nil
}

func (s *Store) ListQuizSets(ctx context.Context, clientID string, limit, offset int) ([]models.QuizSetSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, structured, question_count, created_at
		 FROM quiz_sets WHERE client_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		clientID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list quiz sets: %w", err)
	}
	defer rows.Close()

	var sets []models.QuizSetSummary
	for rows.Next() {
		var sum models.QuizSetSummary
		if err := rows.Scan(&sum.ID, &sum.Topic, &sum.Structured, &sum.QuestionCount, &sum.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz set: %w", err)
		}
		sets = append(sets, sum)
	}
	return sets, rows.Err()
}
