package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/laxa-app/laxa/internal/api/http"
	auth "github.com/laxa-app/laxa/internal/auth/middleware"
	"github.com/laxa-app/laxa/internal/cache"
	"github.com/laxa-app/laxa/internal/config"
	"github.com/laxa-app/laxa/internal/db"
	"github.com/laxa-app/laxa/internal/events"
	"github.com/laxa-app/laxa/internal/grading"
	"github.com/laxa-app/laxa/internal/grading/ocr"
	"github.com/laxa-app/laxa/internal/homework"
	"github.com/laxa-app/laxa/internal/rbac"
	"github.com/laxa-app/laxa/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	// --- Grader ---
	gopts := []grading.Option{grading.WithMaxEditDistance(cfg.TextMaxEditDistance)}
	if cfg.OCRLang != "" {
		gopts = append(gopts, grading.WithOCR(ocr.NewTesseractOCR(cfg.OCRLang)))
	}
	grader := grading.NewDefaultGrader(gopts...)

	// --- Store (optionally fronted by Redis for assignment reads) ---
	var store homework.Store = homework.NewSQLStore(dbh, cfg.DBDriver, grader)
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		if err := rc.Ping(ctx); err != nil {
			log.Fatalf("redis ping failed: %v", err)
		}
		store = homework.NewCachedStore(store, rc)
	}

	eventLog := events.NewRepo(dbh)
	authSvc := auth.NewAuthService(cfg.AuthSecret)

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	// Protected API (JWT → role from DB → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.AttachRoleFromDB(dbh, true))

		// Parent: author assignments, manage children
		pr.With(rbac.Require("assignment:create")).
			Post("/assignments", api.CreateAssignmentHandler(store))
		pr.With(rbac.Require("users:create_child")).
			Post("/users/children", api.CreateChildHandler(dbh))
		pr.With(rbac.Require("review:list")).
			Get("/reviews", api.ReviewFeedHandler(eventLog))

		// Child flow
		pr.With(rbac.Require("assignment:view")).
			Get("/assignments/{assignmentID}", api.GetAssignmentHandler(store))
		pr.With(rbac.Require("submission:create")).
			Post("/submissions", api.CreateSubmissionHandler(store))
		pr.With(rbac.Require("submission:save")).
			Post("/submissions/{submissionID}/answers", api.SaveAnswersHandler(store))
		pr.With(rbac.Require("submission:submit")).
			Post("/submissions/{submissionID}/submit", api.SubmitHandler(store, eventLog))
		pr.With(rbac.RequireAny("submission:view-own", "submission:view-all")).
			Get("/submissions/{submissionID}", api.GetSubmissionHandler(store))

		pr.With(rbac.Require("scan:upload")).
			Post("/submissions/{submissionID}/scans", api.UploadScanHandler(bs))
		pr.With(rbac.RequireAny("submission:view-own", "submission:view-all")).
			Get("/scans", api.GetScanHandler(bs))

		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	log.Printf("laxad listening on %s (db=%s, cache=%v)", cfg.HTTPAddr, cfg.DBDriver, cfg.RedisAddr != "")
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
