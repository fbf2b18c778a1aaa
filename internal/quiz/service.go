package quiz

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mcq-quiz/backend/internal/mcq"
	"github.com/mcq-quiz/backend/internal/models"
)

const maxTopicLen = 255

type Service struct {
	store *Store
	now   func() time.Time
}

func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Parse normalizes LaTeX escapes and extracts questions from raw generator
// output. It never fails; when nothing can be structured the result carries
// the normalized text for the raw fallback view.
func (s *Service) Parse(raw string) models.ParseResult {
	normalized := mcq.NormalizeLatex(raw)
	questions := mcq.Extract(normalized)
	if questions == nil {
		questions = []mcq.Question{}
	}

	if len(questions) == 0 {
		if strings.TrimSpace(normalized) != "" {
			log.Printf("WARNING: no quiz structure found in %d bytes of text, falling back to raw output", len(normalized))
		}
	} else {
		warnOnGaps(mcq.ComputeStats(questions))
	}

	return models.ParseResult{
		Structured: len(questions) > 0,
		Questions:  questions,
		Raw:        normalized,
	}
}

func warnOnGaps(stats mcq.Stats) {
	for _, n := range stats.MissingAnswer {
		log.Printf("WARNING: question %d of %d has no answer key", n, stats.Total)
	}
	for _, n := range stats.AnswerNoOption {
		log.Printf("WARNING: question %d of %d has an answer pointing at an empty option", n, stats.Total)
	}
	if len(stats.MissingOptions) > 0 {
		log.Printf("WARNING: %d of %d questions have fewer than four options", len(stats.MissingOptions), stats.Total)
	}
}

// Save parses raw text and persists the result for the calling client,
// including unstructured results so the raw text can be shown later.
func (s *Service) Save(ctx context.Context, clientID, topic, raw string) (*models.QuizSet, error) {
	topic = strings.TrimSpace(topic)
	if utf8.RuneCountInString(topic) > maxTopicLen {
		topic = string([]rune(topic)[:maxTopicLen])
	}

	result := s.Parse(raw)
	set := &models.QuizSet{
		ClientID:      clientID,
		Topic:         topic,
		RawText:       raw,
		Normalized:    result.Raw,
		Structured:    result.Structured,
		QuestionCount: len(result.Questions),
		Questions:     result.Questions,
		CreatedAt:     s.now().Unix(),
	}

	if err := s.store.CreateQuizSet(ctx, set); err != nil {
		return nil, fmt.Errorf("save quiz set: %w", err)
	}
	log.Printf("Saved quiz set %d for %s: %d questions (structured=%v)", set.ID, clientID, set.QuestionCount, set.Structured)
	return set, nil
}

func (s *Service) Get(ctx context.Context, clientID string, id int64) (*models.QuizSet, error) {
	return s.store.GetQuizSet(ctx, clientID, id)
}

func (s *Service) List(ctx context.Context, clientID string, limit, offset int) ([]models.QuizSetSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListQuizSets(ctx, clientID, limit, offset)
}
