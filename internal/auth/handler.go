package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mcq-quiz/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// Handler issues API tokens to the single configured client.
type Handler struct {
	secret     []byte
	clientID   string
	secretHash []byte
	now        func() time.Time
}

func NewHandler(secret []byte, clientID, clientSecretHash string) *Handler {
	return &Handler{
		secret:     secret,
		clientID:   clientID,
		secretHash: []byte(clientSecretHash),
		now:        time.Now,
	}
}

func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.ClientID = strings.TrimSpace(req.ClientID)
	if req.ClientID == "" || req.ClientSecret == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "client_id and client_secret are required"})
		return
	}

	if len(h.secretHash) == 0 {
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "Token issuance is not configured"})
		return
	}

	// Always run bcrypt so an unknown client id costs the same as a bad secret.
	secretErr := bcrypt.CompareHashAndPassword(h.secretHash, []byte(req.ClientSecret))
	idOK := subtle.ConstantTimeCompare([]byte(req.ClientID), []byte(h.clientID)) == 1
	if secretErr != nil || !idOK {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid client credentials"})
		return
	}

	token, expiresAt, err := h.generateToken(req.ClientID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{Token: token, ClientID: req.ClientID, ExpiresAt: expiresAt})
}

func (h *Handler) generateToken(clientID string) (string, time.Time, error) {
	now := h.now()
	expiresAt := now.Add(tokenTTL)
	claims := jwt.MapClaims{
		"client_id": clientID,
		"exp":       expiresAt.Unix(),
		"iat":       now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.secret)
	return signed, expiresAt, err
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
