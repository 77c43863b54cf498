package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"party-trivia-service/internal/domain"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

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
	mr, client := newTestRedis(t)
	reg := NewQuizRegistry(client, time.Hour)
	ctx := context.Background()

	id, err := reg.Save(ctx, sampleQuestions())
	if err != nil {
		t.Fatalf("save quiz: %v", err)
	}
	if len(id) != quizCodeLen {
		t.Fatalf("quiz id %q, want %d characters", id, quizCodeLen)
	}
	if !mr.Exists(quizKeyPrefix + id) {
		t.Fatalf("expected redis key %q to be set", quizKeyPrefix+id)
	}

	quiz, err := reg.Get(ctx, id)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if quiz.ID != id || len(quiz.Questions) != 1 || quiz.Questions[0].Answer != "hammer" {
		t.Fatalf("unexpected quiz after round trip: %+v", quiz)
	}

	ok, err := reg.Exists(ctx, id)
	if err != nil || !ok {
		t.Fatalf("exists = %v, %v, want true, nil", ok, err)
	}
	ok, err = reg.Exists(ctx, "NOSUCH")
	if err != nil || ok {
		t.Fatalf("exists for unknown id = %v, %v, want false, nil", ok, err)
	}

	if _, err := reg.Get(ctx, "NOSUCH"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("get unknown quiz: err = %v, want ErrQuizNotFound", err)
	}
}

func TestQuizRegistryListAllNewestFirst(t *testing.T) {
	_, client := newTestRedis(t)
	reg := NewQuizRegistry(client, time.Hour)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	reg.clock = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, _ := reg.Save(ctx, sampleQuestions())
	second, _ := reg.Save(ctx, sampleQuestions())

	all, err := reg.ListAll(ctx)
	if err != nil {
		t.Fatalf("list quizzes: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 quizzes, got %d", len(all))
	}
	if all[0].ID != second || all[1].ID != first {
		t.Fatalf("expected newest first, got %q then %q", all[0].ID, all[1].ID)
	}
}

func TestQuizRegistryTTLEvictsAndCleansIndex(t *testing.T) {
	mr, client := newTestRedis(t)
	reg := NewQuizRegistry(client, time.Minute)
	ctx := context.Background()

	id, err := reg.Save(ctx, sampleQuestions())
	if err != nil {
		t.Fatalf("save quiz: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := reg.Get(ctx, id); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("get evicted quiz: err = %v, want ErrQuizNotFound", err)
	}

	all, err := reg.ListAll(ctx)
	if err != nil {
		t.Fatalf("list quizzes: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected evicted quiz dropped from listing, got %d", len(all))
	}

	// The stale index member is pruned during the walk.
	members, _ := client.ZRange(ctx, quizIndexKey, 0, -1).Result()
	if len(members) != 0 {
		t.Fatalf("expected index cleaned, got %v", members)
	}
}
