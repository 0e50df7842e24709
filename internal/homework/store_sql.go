package homework

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/laxa-app/laxa/internal/grading"
)

// SQLStore persists assignments and submissions with the problem payload as a
// JSON column, the same on sqlite and postgres.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
	grader grading.Grader
}

func NewSQLStore(db *sql.DB, driver string, g grading.Grader) *SQLStore {
	return &SQLStore{db: db, driver: driver, grader: g}
}

func (s *SQLStore) PutAssignment(a Assignment) error {
	pj, err := json.Marshal(a.Problems)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO assignments (id,title,subject,child_id,problems_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, subject=EXCLUDED.subject, problems_json=EXCLUDED.problems_json`,
		a.ID, a.Title, a.Subject, a.ChildID, string(pj), time.Now().Unix())
	return err
}

func (s *SQLStore) GetAssignment(id string) (Assignment, error) {
	row := s.db.QueryRow(`SELECT id,title,subject,child_id,problems_json,created_at FROM assignments WHERE id=$1`, id)
	a, err := scanAssignment(row)
	if err != nil {
		return Assignment{}, err
	}
	return redactAnswers(a), nil
}

func scanAssignment(row *sql.Row) (Assignment, error) {
	var a Assignment
	var pjson string
	if err := row.Scan(&a.ID, &a.Title, &a.Subject, &a.ChildID, &pjson, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Assignment{}, ErrAssignmentNotFound
		}
		return Assignment{}, err
	}
	if err := json.Unmarshal([]byte(pjson), &a.Problems); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

func (s *SQLStore) NewSubmission(assignmentID, childID string) (Submission, error) {
	var exist int
	if err := s.db.QueryRow(`SELECT 1 FROM assignments WHERE id=$1`, assignmentID).Scan(&exist); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, ErrAssignmentNotFound
		}
		return Submission{}, err
	}
	sub := Submission{
		ID:           NewID(),
		AssignmentID: assignmentID,
		ChildID:      childID,
		Status:       "in_progress",
		Answers:      map[string]string{},
	}
	aj, _ := json.Marshal(sub.Answers)
	_, err := s.db.Exec(`INSERT INTO submissions (id,assignment_id,child_id,status,coins,answers_json,results_json,started_at)
		VALUES ($1,$2,$3,'in_progress',0,$4,'{}',$5)`,
		sub.ID, sub.AssignmentID, sub.ChildID, string(aj), time.Now().Unix())
	if err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func (s *SQLStore) SaveAnswers(submissionID string, answers map[string]string) (Submission, error) {
	sub, err := s.GetSubmission(submissionID)
	if err != nil {
		return Submission{}, err
	}
	if sub.Status == "submitted" {
		return Submission{}, ErrAlreadySubmitted
	}
	if sub.Answers == nil {
		sub.Answers = map[string]string{}
	}
	for k, v := range answers {
		sub.Answers[k] = v
	}
	aj, _ := json.Marshal(sub.Answers)
	if _, err := s.db.Exec(`UPDATE submissions SET answers_json=$1 WHERE id=$2`, string(aj), submissionID); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func (s *SQLStore) Submit(submissionID string) (Submission, error) {
	sub, err := s.GetSubmission(submissionID)
	if err != nil {
		return Submission{}, err
	}
	if sub.Status == "submitted" {
		return sub, nil
	}

	// load the assignment WITH answer keys for grading
	row := s.db.QueryRow(`SELECT id,title,subject,child_id,problems_json,created_at FROM assignments WHERE id=$1`, sub.AssignmentID)
	a, err := scanAssignment(row)
	if err != nil {
		return Submission{}, err
	}

	gradeSubmission(s.grader, a, &sub)

	aj, _ := json.Marshal(sub.Answers)
	rj, _ := json.Marshal(sub.Results)
	_, err = s.db.Exec(`UPDATE submissions SET status='submitted', coins=$1, answers_json=$2, results_json=$3, submitted_at=$4 WHERE id=$5`,
		sub.CoinsEarned, string(aj), string(rj), time.Now().Unix(), submissionID)
	if err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func (s *SQLStore) GetSubmission(id string) (Submission, error) {
	row := s.db.QueryRow(`SELECT id,assignment_id,child_id,status,coins,answers_json,results_json FROM submissions WHERE id=$1`, id)
	var sub Submission
	var ajson, rjson string
	if err := row.Scan(&sub.ID, &sub.AssignmentID, &sub.ChildID, &sub.Status, &sub.CoinsEarned, &ajson, &rjson); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, ErrSubmissionNotFound
		}
		return Submission{}, err
	}
	if err := json.Unmarshal([]byte(ajson), &sub.Answers); err != nil {
		sub.Answers = map[string]string{}
	}
	if err := json.Unmarshal([]byte(rjson), &sub.Results); err != nil {
		sub.Results = nil
	}
	return sub, nil
}
