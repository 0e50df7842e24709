package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	authmw "github.com/laxa-app/laxa/internal/auth/middleware"
	"github.com/laxa-app/laxa/internal/grading"
	"github.com/laxa-app/laxa/internal/homework"
)

func testRouter(store homework.Store) chi.Router {
	r := chi.NewRouter()
	r.Post("/assignments", CreateAssignmentHandler(store))
	r.Get("/assignments/{assignmentID}", GetAssignmentHandler(store))
	r.Post("/submissions", CreateSubmissionHandler(store))
	r.Post("/submissions/{submissionID}/answers", SaveAnswersHandler(store))
	r.Post("/submissions/{submissionID}/submit", SubmitHandler(store, nil))
	r.Get("/submissions/{submissionID}", GetSubmissionHandler(store))
	return r
}

func asChild(req *http.Request, childID string) *http.Request {
	return req.WithContext(authmw.WithSubject(req.Context(), childID))
}

func TestAssignmentLifecycle(t *testing.T) {
	store := homework.NewInMemoryStore(grading.NewDefaultGrader())
	r := testRouter(store)

	body := `{
		"title": "Matte",
		"child_id": "child-1",
		"problems": [
			{"type": "number", "correct_answer": "3,50 kr", "coins": 2},
			{"type": "multiple_choice", "prompt": "Störst? A) 5 B) 50 C) 15", "correct_answer": "50", "coins": 1}
		]
	}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/assignments", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create assignment: status %d: %s", rec.Code, rec.Body.String())
	}
	var created homework.Assignment
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Problems[1].CorrectAnswer != "B" {
		t.Errorf("mc answer = %q, want canonical B", created.Problems[1].CorrectAnswer)
	}

	// child fetches the assignment: no answer keys
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/assignments/"+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get assignment: status %d", rec.Code)
	}
	var fetched homework.Assignment
	_ = json.Unmarshal(rec.Body.Bytes(), &fetched)
	for _, p := range fetched.Problems {
		if p.CorrectAnswer != "" {
			t.Errorf("answer key leaked for %s", p.ID)
		}
	}

	// child starts, answers and submits
	rec = httptest.NewRecorder()
	req := asChild(httptest.NewRequest("POST", "/submissions",
		strings.NewReader(`{"assignment_id":"`+created.ID+`"}`)), "child-1")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create submission: status %d: %s", rec.Code, rec.Body.String())
	}
	var sub homework.Submission
	_ = json.Unmarshal(rec.Body.Bytes(), &sub)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/submissions/"+sub.ID+"/answers",
		strings.NewReader(`{"p1":"3.5 kronor","p2":"b"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("save answers: status %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/submissions/"+sub.ID+"/submit", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: status %d: %s", rec.Code, rec.Body.String())
	}
	var graded homework.Submission
	_ = json.Unmarshal(rec.Body.Bytes(), &graded)
	if !graded.Results["p1"] || !graded.Results["p2"] {
		t.Errorf("results = %v, want both correct", graded.Results)
	}
	if graded.CoinsEarned != 3 {
		t.Errorf("coins = %d, want 3", graded.CoinsEarned)
	}
}

func TestCreateAssignmentRejectsBadProblems(t *testing.T) {
	store := homework.NewInMemoryStore(grading.NewDefaultGrader())
	r := testRouter(store)

	tests := []struct {
		name string
		body string
	}{
		{"no title", `{"child_id":"c1","problems":[{"type":"number","correct_answer":"1"}]}`},
		{"no problems", `{"title":"t","child_id":"c1"}`},
		{"mc without options", `{"title":"t","child_id":"c1","problems":[{"type":"multiple_choice","prompt":"Hur många ben har en katt?","correct_answer":"fyra"}]}`},
		{"bad json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest("POST", "/assignments", strings.NewReader(tt.body)))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCreateSubmissionRequiresAuth(t *testing.T) {
	store := homework.NewInMemoryStore(grading.NewDefaultGrader())
	r := testRouter(store)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/submissions", strings.NewReader(`{"assignment_id":"a1"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 without subject", rec.Code)
	}
}
