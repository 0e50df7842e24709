package homework

import (
	"errors"
	"testing"

	"github.com/laxa-app/laxa/internal/grading"
)

func TestNormalizeProblemsAssignsIDs(t *testing.T) {
	ps := []Problem{
		{Type: "number", CorrectAnswer: "42"},
		{ID: "custom", Type: "text", CorrectAnswer: "Stockholm"},
		{Type: "essay"},
	}
	if err := NormalizeProblems(ps); err != nil {
		t.Fatalf("NormalizeProblems: %v", err)
	}
	if ps[0].ID != "p1" || ps[1].ID != "custom" || ps[2].ID != "p3" {
		t.Errorf("ids = %q %q %q", ps[0].ID, ps[1].ID, ps[2].ID)
	}
}

func TestNormalizeProblemsMultipleChoice(t *testing.T) {
	ps := []Problem{{
		Type:          "multiple_choice",
		Prompt:        "Vad är 3x4? A) 7 B) 12 C) 34",
		CorrectAnswer: "12",
	}}
	if err := NormalizeProblems(ps); err != nil {
		t.Fatalf("NormalizeProblems: %v", err)
	}
	if ps[0].CorrectAnswer != "B" {
		t.Errorf("correct = %q, want B", ps[0].CorrectAnswer)
	}
	if len(ps[0].Options) != 3 {
		t.Errorf("options = %v, want 3 extracted", ps[0].Options)
	}
}

func TestNormalizeProblemsRejects(t *testing.T) {
	tests := []struct {
		name string
		ps   []Problem
	}{
		{"empty list", nil},
		{"unknown type", []Problem{{Type: "puzzle", CorrectAnswer: "x"}}},
		{"missing answer", []Problem{{Type: "number"}}},
		{"blank answer", []Problem{{Type: "text", CorrectAnswer: "   "}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NormalizeProblems(tt.ps); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestNormalizeProblemsMissingOptions(t *testing.T) {
	ps := []Problem{{
		Type:          "multiple_choice",
		Prompt:        "Vilken färg har himlen?", // no markers to extract
		CorrectAnswer: "blå",
	}}
	err := NormalizeProblems(ps)
	if !errors.Is(err, grading.ErrMissingOptions) {
		t.Fatalf("err = %v, want ErrMissingOptions", err)
	}
}
