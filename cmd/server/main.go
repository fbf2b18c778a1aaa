package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mcq-quiz/backend/internal/auth"
	"github.com/mcq-quiz/backend/internal/config"
	"github.com/mcq-quiz/backend/internal/database"
	"github.com/mcq-quiz/backend/internal/middleware"
	"github.com/mcq-quiz/backend/internal/quiz"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	if cfg.ClientSecretHash == "" {
		log.Println("WARNING: API_CLIENT_SECRET_HASH not set, token issuance disabled")
	}
	if cfg.UsingDefaultJWTSecret() {
		log.Println("WARNING: JWT_SECRET not set, using the development signing key")
	}

	// Initialize handlers
	authHandler := auth.NewHandler(cfg.JWTSecret, cfg.ClientID, cfg.ClientSecretHash)
	quizHandler := quiz.NewHandler(quiz.NewService(quiz.NewStore(db)), cfg.MaxBodyBytes)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/token", authHandler.IssueToken).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	quizHandler.RegisterRoutes(api, protected)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Server starting on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
