package homework

import (
	"context"
	"testing"

	"github.com/laxa-app/laxa/internal/cache"
	"github.com/laxa-app/laxa/internal/grading"
)

func TestCachedStoreReadThrough(t *testing.T) {
	mem := cache.NewMemoryCache()
	cs := NewCachedStore(newTestStore(t), mem)

	a, err := cs.GetAssignment("a1")
	if err != nil {
		t.Fatalf("GetAssignment: %v", err)
	}
	if _, ok := mem.Get(context.Background(), "assignment:a1"); !ok {
		t.Fatalf("assignment not cached after read")
	}

	again, err := cs.GetAssignment("a1")
	if err != nil {
		t.Fatalf("cached GetAssignment: %v", err)
	}
	if again.ID != a.ID || len(again.Problems) != len(a.Problems) {
		t.Errorf("cached read differs: %+v vs %+v", again, a)
	}
	for _, p := range again.Problems {
		if p.CorrectAnswer != "" {
			t.Errorf("cached assignment leaked answer for %s", p.ID)
		}
	}
}

func TestCachedStorePutInvalidates(t *testing.T) {
	mem := cache.NewMemoryCache()
	cs := NewCachedStore(newTestStore(t), mem)

	if _, err := cs.GetAssignment("a1"); err != nil {
		t.Fatalf("GetAssignment: %v", err)
	}
	updated := mathAssignment()
	updated.Title = "Matte vecka 13"
	if err := cs.PutAssignment(updated); err != nil {
		t.Fatalf("PutAssignment: %v", err)
	}
	if _, ok := mem.Get(context.Background(), "assignment:a1"); ok {
		t.Fatalf("cache entry survived PutAssignment")
	}
	a, err := cs.GetAssignment("a1")
	if err != nil {
		t.Fatalf("GetAssignment after put: %v", err)
	}
	if a.Title != "Matte vecka 13" {
		t.Errorf("title = %q, want updated title", a.Title)
	}
}

func TestCachedStoreDropsCorruptEntry(t *testing.T) {
	mem := cache.NewMemoryCache()
	cs := NewCachedStore(newTestStore(t), mem)

	_ = mem.Set(context.Background(), "assignment:a1", "{not json")
	a, err := cs.GetAssignment("a1")
	if err != nil {
		t.Fatalf("GetAssignment: %v", err)
	}
	if a.ID != "a1" {
		t.Errorf("id = %q, want a1", a.ID)
	}
}

func TestCachedStoreDelegatesWrites(t *testing.T) {
	cs := NewCachedStore(NewInMemoryStore(grading.NewDefaultGrader()), cache.NewMemoryCache())
	if err := cs.PutAssignment(mathAssignment()); err != nil {
		t.Fatalf("PutAssignment: %v", err)
	}
	sub, err := cs.NewSubmission("a1", "child-1")
	if err != nil {
		t.Fatalf("NewSubmission: %v", err)
	}
	if _, err := cs.SaveAnswers(sub.ID, map[string]string{"p1": "10"}); err != nil {
		t.Fatalf("SaveAnswers: %v", err)
	}
	graded, err := cs.Submit(sub.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !graded.Results["p1"] {
		t.Errorf("p1 should grade correct through the wrapper")
	}
}
