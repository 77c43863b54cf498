package memory

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"party-trivia-service/internal/domain"
)

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Type:     "odd-one-out",
			Question: "Find the odd one out.",
			Options: []domain.Option{
				{Label: "Apple", Value: "apple"},
				{Label: "Pear", Value: "pear"},
				{Label: "Plum", Value: "plum"},
				{Label: "Hammer", Value: "hammer"},
			},
			Answer: "hammer",
		},
	}
}

func TestQuizRegistryRoundTrip(t *testing.T) {
	reg := NewQuizRegistry()
	ctx := context.Background()

	id, err := reg.Save(ctx, sampleQuestions())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(id) != quizCodeLen {
		t.Fatalf("quiz id %q, want %d characters", id, quizCodeLen)
	}

	quiz, err := reg.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if quiz.ID != id {
		t.Errorf("quiz.ID = %q, want %q", quiz.ID, id)
	}
	if len(quiz.Questions) != 1 || quiz.Questions[0].Answer != "hammer" {
		t.Errorf("unexpected questions: %+v", quiz.Questions)
	}
	if quiz.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	ok, err := reg.Exists(ctx, id)
	if err != nil || !ok {
		t.Errorf("Exists(%q) = %v, %v, want true, nil", id, ok, err)
	}
}

func TestQuizRegistryGetMissing(t *testing.T) {
	reg := NewQuizRegistry()

	_, err := reg.Get(context.Background(), "NOSUCH")
	if !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("Get unknown id: err = %v, want ErrQuizNotFound", err)
	}

	ok, err := reg.Exists(context.Background(), "NOSUCH")
	if err != nil || ok {
		t.Fatalf("Exists unknown id = %v, %v, want false, nil", ok, err)
	}
}

func TestQuizRegistrySaveCopiesQuestions(t *testing.T) {
	reg := NewQuizRegistry()
	ctx := context.Background()

	questions := sampleQuestions()
	id, err := reg.Save(ctx, questions)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	questions[0].Answer = "mutated"

	quiz, err := reg.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if quiz.Questions[0].Answer != "hammer" {
		t.Errorf("stored answer = %q, caller mutation leaked into the registry", quiz.Questions[0].Answer)
	}
}

func TestQuizRegistryListAllNewestFirst(t *testing.T) {
	reg := NewQuizRegistry()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	reg.clock = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, _ := reg.Save(ctx, sampleQuestions())
	second, _ := reg.Save(ctx, sampleQuestions())
	third, _ := reg.Save(ctx, sampleQuestions())

	all, err := reg.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListAll returned %d quizzes, want 3", len(all))
	}
	wantOrder := []string{third, second, first}
	for i, quiz := range all {
		if quiz.ID != wantOrder[i] {
			t.Errorf("all[%d].ID = %q, want %q", i, quiz.ID, wantOrder[i])
		}
	}
}

func TestQuizRegistryListAllEmpty(t *testing.T) {
	reg := NewQuizRegistry()

	all, err := reg.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("ListAll on empty registry = %#v, want empty non-nil slice", all)
	}
}

func TestQuizRegistryCodeCollisionRedraws(t *testing.T) {
	reg := NewQuizRegistry()
	ctx := context.Background()

	reg.clock = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	reg.rnd = rand.New(rand.NewSource(7))
	first, err := reg.Save(ctx, sampleQuestions())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Reseeding makes the next draw repeat the first code, forcing a redraw.
	reg.rnd = rand.New(rand.NewSource(7))
	second, err := reg.Save(ctx, sampleQuestions())
	if err != nil {
		t.Fatalf("Save after reseed: %v", err)
	}
	if second == first {
		t.Fatalf("Save reused code %q despite collision", first)
	}

	all, err := reg.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("registry holds %d quizzes, want 2", len(all))
	}
}
