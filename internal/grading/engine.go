package grading

import (
	"context"
	"fmt"
	"strings"
)

// OCR extracts text from a stored worksheet scan. The implementation lives
// outside this repo; grading only needs the interface.
type OCR interface {
	ExtractPath(ctx context.Context, path string) (string, error)
}

// Answer is the minimal view of a problem needed to grade one response.
// Multiple choice answers are assumed canonical (a single letter) because the
// importer runs NormalizeMultipleChoiceProblem before anything is stored.
type Answer struct {
	Type    string // number, multiple_choice, text, essay, scan
	Correct string
}

// Result is the outcome of grading a single response.
type Result struct {
	Correct     bool
	NeedsManual bool     // parent review required
	Feedback    []string // optional notes
}

// Strategy grades one answer type.
type Strategy interface {
	Grade(ctx context.Context, a Answer, response string) (Result, error)
}

// Grader routes by answer type to the matching Strategy.
type Grader interface {
	Grade(ctx context.Context, a Answer, response string) (Result, error)
}

type defaultGrader struct {
	strategies map[string]Strategy
}

func (g *defaultGrader) Grade(ctx context.Context, a Answer, response string) (Result, error) {
	s, ok := g.strategies[a.Type]
	if !ok {
		return Result{NeedsManual: true, Feedback: []string{"no strategy available"}}, nil
	}
	return s.Grade(ctx, a, response)
}

// Engine options

type Option func(*config)

type config struct {
	MaxEditDistance int // fuzzy slack for text answers
	OCR             OCR // optional, for "scan"
}

func WithMaxEditDistance(n int) Option { return func(c *config) { c.MaxEditDistance = n } }
func WithOCR(o OCR) Option             { return func(c *config) { c.OCR = o } }

// NewDefaultGrader installs the built-in strategies.
func NewDefaultGrader(opts ...Option) Grader {
	cfg := &config{MaxEditDistance: 1}
	for _, o := range opts {
		o(cfg)
	}
	return &defaultGrader{
		strategies: map[string]Strategy{
			"number":          numberStrategy{},
			"multiple_choice": multipleChoiceStrategy{},
			"text":            textStrategy{maxEdit: cfg.MaxEditDistance},
			"essay":           essayStrategy{},
			"scan":            scanStrategy{ocr: cfg.OCR},
		},
	}
}

// --- Strategies ---

type numberStrategy struct{}

func (numberStrategy) Grade(_ context.Context, a Answer, response string) (Result, error) {
	return Result{Correct: ValidateNumberAnswer(a.Correct, response)}, nil
}

type multipleChoiceStrategy struct{}

// Both sides are canonical letters; comparison is a case-insensitive match.
func (multipleChoiceStrategy) Grade(_ context.Context, a Answer, response string) (Result, error) {
	ok := strings.EqualFold(strings.TrimSpace(response), strings.TrimSpace(a.Correct))
	return Result{Correct: ok}, nil
}

type textStrategy struct{ maxEdit int }

func (s textStrategy) Grade(_ context.Context, a Answer, response string) (Result, error) {
	want := foldText(a.Correct)
	got := foldText(response)
	if want == got {
		return Result{Correct: true}, nil
	}
	if s.maxEdit > 0 && want != "" && editDistance(want, got) <= s.maxEdit {
		return Result{Correct: true, Feedback: []string{"close match (fuzzy)"}}, nil
	}
	return Result{}, nil
}

type essayStrategy struct{}

func (essayStrategy) Grade(_ context.Context, _ Answer, _ string) (Result, error) {
	return Result{NeedsManual: true, Feedback: []string{"manual grading required"}}, nil
}

// scanStrategy grades a photographed worksheet answer: the response is the
// blob key of an uploaded scan, OCR turns it into text, and the text goes
// through the numeric validator. Without an OCR it stays manual.
type scanStrategy struct{ ocr OCR }

func (s scanStrategy) Grade(ctx context.Context, a Answer, response string) (Result, error) {
	if s.ocr == nil {
		return Result{NeedsManual: true, Feedback: []string{"OCR not configured"}}, nil
	}
	text, err := s.ocr.ExtractPath(ctx, response)
	if err != nil {
		return Result{NeedsManual: true, Feedback: []string{fmt.Sprintf("OCR failed: %v", err)}}, nil
	}
	return Result{Correct: ValidateNumberAnswer(a.Correct, text)}, nil
}
