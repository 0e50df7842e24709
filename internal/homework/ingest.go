package homework

import (
	"errors"
	"fmt"
	"strings"

	"github.com/laxa-app/laxa/internal/grading"
)

var knownProblemTypes = map[string]bool{
	"number":          true,
	"multiple_choice": true,
	"text":            true,
	"essay":           true,
	"scan":            true,
}

// NormalizeProblems canonicalizes imported problems in place before they are
// stored. Multiple choice answers become single letters; an unresolvable
// option set (grading.ErrMissingOptions) aborts the import, since such a
// problem could never be graded.
func NormalizeProblems(problems []Problem) error {
	if len(problems) == 0 {
		return errors.New("assignment has no problems")
	}
	for i := range problems {
		p := &problems[i]
		if p.ID == "" {
			p.ID = fmt.Sprintf("p%d", i+1)
		}
		if !knownProblemTypes[p.Type] {
			return fmt.Errorf("problem %s: unknown type %q", p.ID, p.Type)
		}
		if p.Type != "essay" && strings.TrimSpace(p.CorrectAnswer) == "" {
			return fmt.Errorf("problem %s: correct answer required", p.ID)
		}
		if p.Type != "multiple_choice" {
			continue
		}
		norm, err := grading.NormalizeMultipleChoiceProblem(grading.Problem{
			AnswerType:    "multiple_choice",
			CorrectAnswer: p.CorrectAnswer,
			Options:       p.Options,
			QuestionText:  p.Prompt,
		})
		if err != nil {
			return fmt.Errorf("problem %s: %w", p.ID, err)
		}
		p.CorrectAnswer = norm.CorrectAnswer
		if len(norm.Options) > 0 {
			p.Options = norm.Options
		}
	}
	return nil
}
