package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/laxa-app/laxa/internal/homework"
)

// CreateAssignmentHandler ingests a new assignment. Every problem runs through
// normalization first, so multiple choice answers land in storage as canonical
// letters. A multiple choice problem with no resolvable options is an
// authoring error and rejects the whole assignment.
func CreateAssignmentHandler(store homework.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a homework.Assignment
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if a.Title == "" || a.ChildID == "" {
			http.Error(w, "title and child_id required", http.StatusBadRequest)
			return
		}
		if err := homework.NormalizeProblems(a.Problems); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if a.ID == "" {
			a.ID = homework.NewID()
		}
		if err := store.PutAssignment(a); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(a)
	}
}

func GetAssignmentHandler(store homework.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "assignmentID")
		a, err := store.GetAssignment(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}
