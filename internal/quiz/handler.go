package quiz

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mcq-quiz/backend/internal/middleware"
	"github.com/mcq-quiz/backend/internal/models"
)

type Handler struct {
	service      *Service
	maxBodyBytes int64
}

func NewHandler(service *Service, maxBodyBytes int64) *Handler {
	return &Handler{service: service, maxBodyBytes: maxBodyBytes}
}

// RegisterRoutes mounts the stateless parse endpoint on public and the
// stored quiz-set endpoints on protected.
func (h *Handler) RegisterRoutes(public, protected *mux.Router) {
	public.HandleFunc("/quizzes/parse", h.Parse).Methods("POST")

	protected.HandleFunc("/quizzes", h.CreateQuizSet).Methods("POST")
	protected.HandleFunc("/quizzes", h.ListQuizSets).Methods("GET")
	protected.HandleFunc("/quizzes/{id:[0-9]+}", h.GetQuizSet).Methods("GET")
}

func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req models.ParseRequest
	if !h.decode(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, h.service.Parse(req.Text))
}

func (h *Handler) CreateQuizSet(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.ClientID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req models.CreateQuizSetRequest
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "text is required"})
		return
	}

	set, err := h.service.Save(r.Context(), clientID, req.Topic, req.Text)
	if err != nil {
		log.Printf("create quiz set: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save quiz set"})
		return
	}

	writeJSON(w, http.StatusCreated, set)
}

func (h *Handler) ListQuizSets(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.ClientID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	query := r.URL.Query()
	limit := intQueryParam(query, "limit", 20)
	offset := intQueryParam(query, "offset", 0)

	sets, err := h.service.List(r.Context(), clientID, limit, offset)
	if err != nil {
		log.Printf("list quiz sets: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list quiz sets"})
		return
	}

	if sets == nil {
		sets = []models.QuizSetSummary{}
	}
	writeJSON(w, http.StatusOK, sets)
}

func (h *Handler) GetQuizSet(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.ClientID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid quiz set ID"})
		return
	}

	set, err := h.service.Get(r.Context(), clientID, id)
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz set not found"})
		return
	}
	if err != nil {
		log.Printf("get quiz set %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load quiz set"})
		return
	}

	writeJSON(w, http.StatusOK, set)
}

// decode reads a JSON body capped at maxBodyBytes, writing a 400 on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "Request body too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
