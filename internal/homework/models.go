package homework

// Problem is one question inside an assignment. CorrectAnswer is canonical by
// the time it is stored: multiple choice answers are a single letter, numeric
// answers are whatever the author typed (the validator tolerates formatting).
type Problem struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"` // number, multiple_choice, text, essay, scan
	Prompt        string   `json:"prompt,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Coins         int      `json:"coins"`
}

// Assignment is a set of problems a parent hands to one child.
type Assignment struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject,omitempty"`
	ChildID   string    `json:"child_id"`
	Problems  []Problem `json:"problems"`
	CreatedAt int64     `json:"created_at,omitempty"`
}

// Submission is a child's work on an assignment. Answers accumulates while the
// submission is in progress; Results and CoinsEarned are filled in on submit.
type Submission struct {
	ID           string            `json:"id"`
	AssignmentID string            `json:"assignment_id"`
	ChildID      string            `json:"child_id"`
	Status       string            `json:"status"` // in_progress|submitted
	CoinsEarned  int               `json:"coins_earned"`
	Answers      map[string]string `json:"answers"`           // problemID -> raw answer
	Results      map[string]bool   `json:"results,omitempty"` // problemID -> correct
}
