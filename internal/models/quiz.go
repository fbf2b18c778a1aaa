package models

import "github.com/mcq-quiz/backend/internal/mcq"

// ParseRequest carries raw generator output to be structured.
type ParseRequest struct {
	Text string `json:"text"`
}

// ParseResult is what the renderer consumes. When Structured is false the
// caller shows Raw (already LaTeX-normalized) instead of a quiz.
type ParseResult struct {
	Structured bool           `json:"structured"`
	Questions  []mcq.Question `json:"questions"`
	Raw        string         `json:"raw"`
}

type CreateQuizSetRequest struct {
	Topic string `json:"topic"`
	Text  string `json:"text"`
}

// QuizSet is a persisted parse of one generator response.
type QuizSet struct {
	ID            int64          `json:"id"`
	ClientID      string         `json:"client_id"`
	Topic         string         `json:"topic"`
	RawText       string         `json:"raw_text"`
	Normalized    string         `json:"normalized_text"`
	Structured    bool           `json:"structured"`
	QuestionCount int            `json:"question_count"`
	Questions     []mcq.Question `json:"questions"`
	CreatedAt     int64          `json:"created_at"`
}

// QuizSetSummary is the list view of a quiz set, without the question bodies.
type QuizSetSummary struct {
	ID            int64  `json:"id"`
	Topic         string `json:"topic"`
	Structured    bool   `json:"structured"`
	QuestionCount int    `json:"question_count"`
	CreatedAt     int64  `json:"created_at"`
}
