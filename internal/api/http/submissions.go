package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	authmw "github.com/laxa-app/laxa/internal/auth/middleware"
	"github.com/laxa-app/laxa/internal/events"
	"github.com/laxa-app/laxa/internal/homework"
)

func CreateSubmissionHandler(store homework.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AssignmentID string `json:"assignment_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		childID := authmw.SubjectFromContext(r.Context())
		if req.AssignmentID == "" || childID == "" {
			http.Error(w, "assignment_id required", http.StatusBadRequest)
			return
		}
		s, err := store.NewSubmission(req.AssignmentID, childID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(s)
	}
}

func SaveAnswersHandler(store homework.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "submissionID")
		var answers map[string]string
		if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		s, err := store.SaveAnswers(id, answers)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(s)
	}
}

// SubmitHandler grades the submission and appends a SubmissionGraded event
// for the parent review feed. A failed event append is logged, not surfaced;
// the child already has their result.
func SubmitHandler(store homework.Store, eventLog *events.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "submissionID")
		s, err := store.Submit(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if eventLog != nil {
			if err := eventLog.AppendGraded(r.Context(), s.ID, s); err != nil {
				log.Printf("event append failed for submission %s: %v", s.ID, err)
			}
		}
		_ = json.NewEncoder(w).Encode(s)
	}
}

func GetSubmissionHandler(store homework.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "submissionID")
		s, err := store.GetSubmission(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(s)
	}
}

// ReviewFeedHandler serves the graded-submission event feed to parents.
// ?after=<offset> pages through the log.
func ReviewFeedHandler(repo *events.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var after int64
		if v := r.URL.Query().Get("after"); v != "" {
			after, _ = strconv.ParseInt(v, 10, 64)
		}
		evs, err := repo.Since(r.Context(), after, 100)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(evs)
	}
}
