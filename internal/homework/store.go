package homework

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"

	"github.com/laxa-app/laxa/internal/grading"
)

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadySubmitted   = errors.New("submission already submitted")
)

type Store interface {
	PutAssignment(a Assignment) error
	// GetAssignment returns the assignment with correct answers stripped;
	// it is safe to serve to a child.
	GetAssignment(id string) (Assignment, error)
	NewSubmission(assignmentID, childID string) (Submission, error)
	SaveAnswers(submissionID string, answers map[string]string) (Submission, error)
	// Submit grades every answered problem and freezes the submission.
	// Submitting twice is a no-op returning the graded submission.
	Submit(submissionID string) (Submission, error)
	GetSubmission(id string) (Submission, error)
}

type memoryStore struct {
	mu          sync.RWMutex
	assignments map[string]Assignment
	submissions map[string]Submission
	grader      grading.Grader
}

func NewInMemoryStore(g grading.Grader) Store {
	return &memoryStore{
		assignments: map[string]Assignment{},
		submissions: map[string]Submission{},
		grader:      g,
	}
}

func (m *memoryStore) PutAssignment(a Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments[a.ID] = a
	return nil
}

func (m *memoryStore) GetAssignment(id string) (Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assignments[id]
	if !ok {
		return Assignment{}, ErrAssignmentNotFound
	}
	return redactAnswers(a), nil
}

func (m *memoryStore) NewSubmission(assignmentID, childID string) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assignments[assignmentID]; !ok {
		return Submission{}, ErrAssignmentNotFound
	}
	s := Submission{
		ID:           NewID(),
		AssignmentID: assignmentID,
		ChildID:      childID,
		Status:       "in_progress",
		Answers:      map[string]string{},
	}
	m.submissions[s.ID] = s
	return s, nil
}

func (m *memoryStore) SaveAnswers(submissionID string, answers map[string]string) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.submissions[submissionID]
	if !ok {
		return Submission{}, ErrSubmissionNotFound
	}
	if s.Status == "submitted" {
		return Submission{}, ErrAlreadySubmitted
	}
	for k, v := range answers {
		s.Answers[k] = v
	}
	m.submissions[submissionID] = s
	return s, nil
}

func (m *memoryStore) Submit(submissionID string) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.submissions[submissionID]
	if !ok {
		return Submission{}, ErrSubmissionNotFound
	}
	if s.Status == "submitted" {
		return s, nil
	}
	a, ok := m.assignments[s.AssignmentID]
	if !ok {
		return Submission{}, ErrAssignmentNotFound
	}
	gradeSubmission(m.grader, a, &s)
	m.submissions[submissionID] = s
	return s, nil
}

func (m *memoryStore) GetSubmission(id string) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.submissions[id]
	if !ok {
		return Submission{}, ErrSubmissionNotFound
	}
	return s, nil
}

// gradeSubmission runs every answered problem through the grader and fills in
// Results and CoinsEarned. Grading errors count as incorrect rather than
// failing the submit; a child's answer must never crash the request.
func gradeSubmission(g grading.Grader, a Assignment, s *Submission) {
	ctx := context.Background()
	s.Results = map[string]bool{}
	s.CoinsEarned = 0
	for _, p := range a.Problems {
		answer, has := s.Answers[p.ID]
		if !has {
			continue
		}
		res, err := g.Grade(ctx, grading.Answer{Type: p.Type, Correct: p.CorrectAnswer}, answer)
		if err != nil {
			continue
		}
		s.Results[p.ID] = res.Correct
		if res.Correct {
			s.CoinsEarned += p.Coins
		}
	}
	s.Status = "submitted"
}

// redactAnswers copies an assignment with the answer keys blanked out.
func redactAnswers(a Assignment) Assignment {
	redacted := make([]Problem, len(a.Problems))
	copy(redacted, a.Problems)
	for i := range redacted {
		redacted[i].CorrectAnswer = ""
	}
	a.Problems = redacted
	return a
}

// NewID returns a short random identifier for assignments and submissions.
func NewID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
