package quiz

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/mcq-quiz/backend/internal/middleware"
	"github.com/mcq-quiz/backend/internal/models"
)

const sampleText = `Here are some questions:
1. What is 2+2?
A) 3
B) 4
C) 5
D) 6
Answer: B
Explanation: Basic addition.`

// newTestRouter mounts the handler the way cmd/server does, with a stub
// auth layer that trusts the X-Test-Client header.
func newTestRouter(t *testing.T, maxBody int64) *mux.Router {
	t.Helper()
	h := NewHandler(NewService(newTestStore(t)), maxBody)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	protected := api.PathPrefix("").Subrouter()
	protected.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Test-Client")
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(middleware.WithClientID(r.Context(), id)))
		})
	})
	h.RegisterRoutes(api, protected)
	return r
}

func do(r http.Handler, method, path, client string, body interface{}) *httptest.ResponseRecorder {
	var payload string
	switch b := body.(type) {
	case nil:
	case string:
		payload = b
	default:
		data, _ := json.Marshal(b)
		payload = string(data)
	}

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if client != "" {
		req.Header.Set("X-Test-Client", client)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Parse(t *testing.T) {
	r := newTestRouter(t, 1<<20)
	rec := do(r, http.MethodPost, "/api/v1/quizzes/parse", "", models.ParseRequest{Text: sampleText})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result models.ParseResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Structured || len(result.Questions) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	q := result.Questions[0]
	if q.Question != "What is 2+2?" || q.Answer != "B" || q.Options["B"] != "4" {
		t.Errorf("unexpected question: %+v", q)
	}
}

func TestHandler_ParseUnstructured(t *testing.T) {
	r := newTestRouter(t, 1<<20)
	rec := do(r, http.MethodPost, "/api/v1/quizzes/parse", "", models.ParseRequest{Text: "no quiz here"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw["structured"]) != "false" {
		t.Errorf("structured = %s", raw["structured"])
	}
	if string(raw["questions"]) != "[]" {
		t.Errorf("questions should encode as [], got %s", raw["questions"])
	}
	if string(raw["raw"]) != `"no quiz here"` {
		t.Errorf("raw = %s", raw["raw"])
	}
}

func TestHandler_ParseInvalidBody(t *testing.T) {
	r := newTestRouter(t, 1<<20)
	rec := do(r, http.MethodPost, "/api/v1/quizzes/parse", "", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_ParseBodyTooLarge(t *testing.T) {
	r := newTestRouter(t, 16)
	rec := do(r, http.MethodPost, "/api/v1/quizzes/parse", "", models.ParseRequest{Text: sampleText})
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestHandler_CreateGetList(t *testing.T) {
	r := newTestRouter(t, 1<<20)

	rec := do(r, http.MethodPost, "/api/v1/quizzes", "client-a", models.CreateQuizSetRequest{Topic: "arithmetic", Text: sampleText})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created models.QuizSet
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == 0 || created.QuestionCount != 1 {
		t.Fatalf("unexpected created set: %+v", created)
	}

	path := fmt.Sprintf("/api/v1/quizzes/%d", created.ID)
	rec = do(r, http.MethodGet, path, "client-a", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
	var fetched models.QuizSet
	if err := json.NewDecoder(rec.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode fetched: %v", err)
	}
	if fetched.Topic != "arithmetic" || len(fetched.Questions) != 1 {
		t.Errorf("unexpected fetched set: %+v", fetched)
	}

	rec = do(r, http.MethodGet, path, "client-b", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("other client: expected 404, got %d", rec.Code)
	}

	rec = do(r, http.MethodGet, "/api/v1/quizzes?limit=5", "client-a", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var sets []models.QuizSetSummary
	if err := json.NewDecoder(rec.Body).Decode(&sets); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(sets) != 1 || sets[0].ID != created.ID {
		t.Errorf("unexpected list: %+v", sets)
	}
}

func TestHandler_ListEmptyIsArray(t *testing.T) {
	r := newTestRouter(t, 1<<20)
	rec := do(r, http.MethodGet, "/api/v1/quizzes", "client-a", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected [], got %s", got)
	}
}

func TestHandler_CreateRequiresText(t *testing.T) {
	r := newTestRouter(t, 1<<20)
	rec := do(r, http.MethodPost, "/api/v1/quizzes", "client-a", models.CreateQuizSetRequest{Topic: "x", Text: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_ProtectedRoutesNeedClient(t *testing.T) {
	r := newTestRouter(t, 1<<20)
	rec := do(r, http.MethodGet, "/api/v1/quizzes", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
