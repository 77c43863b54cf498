package memory

import (
	"context"
	"errors"
	"testing"

	"party-trivia-service/internal/domain"
)

func TestSessionRegistryCreateAndGet(t *testing.T) {
	reg := NewSessionRegistry()
	ctx := context.Background()

	id, err := reg.Create(ctx, "QUIZ01")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(id) != sessionCodeLen {
		t.Fatalf("session id %q, want %d characters", id, sessionCodeLen)
	}

	session, err := reg.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if session.QuizID != "QUIZ01" {
		t.Errorf("QuizID = %q, want QUIZ01", session.QuizID)
	}
	if session.IsQuizStarted {
		t.Error("new session reports started")
	}
	if session.CurrentQuestionIndex != 0 {
		t.Errorf("CurrentQuestionIndex = %d, want 0", session.CurrentQuestionIndex)
	}
	if session.Participants == nil || len(session.Participants) != 0 {
		t.Errorf("Participants = %#v, want empty non-nil slice", session.Participants)
	}

	if _, err := reg.Get(ctx, "MISSING1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Get unknown id: err = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionRegistryParticipantLifecycle(t *testing.T) {
	reg := NewSessionRegistry()
	ctx := context.Background()

	id, err := reg.Create(ctx, "QUIZ01")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ann, err := reg.AddParticipant(ctx, id, "Ann")
	if err != nil {
		t.Fatalf("AddParticipant Ann: %v", err)
	}
	bo, err := reg.AddParticipant(ctx, id, "Bo")
	if err != nil {
		t.Fatalf("AddParticipant Bo: %v", err)
	}
	if ann.ID == bo.ID {
		t.Fatalf("participants share id %q", ann.ID)
	}
	if ann.Avatar == "" || bo.Avatar == "" {
		t.Error("participant joined without an avatar")
	}
	if ann.Score != 0 {
		t.Errorf("new participant score = %d, want 0", ann.Score)
	}

	session, _ := reg.Get(ctx, id)
	if len(session.Participants) != 2 {
		t.Fatalf("roster size %d, want 2", len(session.Participants))
	}
	if session.Participants[0].Name != "Ann" || session.Participants[1].Name != "Bo" {
		t.Errorf("roster out of join order: %+v", session.Participants)
	}

	if err := reg.RemoveParticipant(ctx, id, ann.ID); err != nil {
		t.Fatalf("RemoveParticipant: %v", err)
	}
	if err := reg.RemoveParticipant(ctx, id, ann.ID); !errors.Is(err, domain.ErrParticipantNotFound) {
		t.Errorf("second remove: err = %v, want ErrParticipantNotFound", err)
	}

	session, _ = reg.Get(ctx, id)
	if len(session.Participants) != 1 || session.Participants[0].ID != bo.ID {
		t.Errorf("roster after remove: %+v", session.Participants)
	}
}

func TestSessionRegistryStartLocksRoster(t *testing.T) {
	reg := NewSessionRegistry()
	ctx := context.Background()

	id, _ := reg.Create(ctx, "QUIZ01")
	ann, _ := reg.AddParticipant(ctx, id, "Ann")

	if err := reg.Start(ctx, id); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// Starting twice is a latch, not an error.
	if err := reg.Start(ctx, id); err != nil {
		t.Fatalf("second Start: %v", err)
	}

	if _, err := reg.AddParticipant(ctx, id, "Late"); !errors.Is(err, domain.ErrSessionStarted) {
		t.Errorf("join after start: err = %v, want ErrSessionStarted", err)
	}

	// Leaving stays allowed after start.
	if err := reg.RemoveParticipant(ctx, id, ann.ID); err != nil {
		t.Errorf("leave after start: %v", err)
	}

	if err := reg.Start(ctx, "MISSING1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Start unknown session: err = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionRegistrySetQuestionIndexAndScore(t *testing.T) {
	reg := NewSessionRegistry()
	ctx := context.Background()

	id, _ := reg.Create(ctx, "QUIZ01")
	ann, _ := reg.AddParticipant(ctx, id, "Ann")

	if err := reg.SetQuestionIndex(ctx, id, 4); err != nil {
		t.Fatalf("SetQuestionIndex: %v", err)
	}
	if err := reg.SetScore(ctx, id, ann.ID, 30); err != nil {
		t.Fatalf("SetScore: %v", err)
	}
	// Absolute set, not an increment.
	if err := reg.SetScore(ctx, id, ann.ID, 10); err != nil {
		t.Fatalf("SetScore again: %v", err)
	}

	session, _ := reg.Get(ctx, id)
	if session.CurrentQuestionIndex != 4 {
		t.Errorf("CurrentQuestionIndex = %d, want 4", session.CurrentQuestionIndex)
	}
	if session.Participants[0].Score != 10 {
		t.Errorf("score = %d, want 10", session.Participants[0].Score)
	}

	if err := reg.SetScore(ctx, id, "ghost", 5); !errors.Is(err, domain.ErrParticipantNotFound) {
		t.Errorf("SetScore unknown participant: err = %v, want ErrParticipantNotFound", err)
	}
	if err := reg.SetQuestionIndex(ctx, "MISSING1", 1); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("SetQuestionIndex unknown session: err = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionRegistryGetReturnsSnapshot(t *testing.T) {
	reg := NewSessionRegistry()
	ctx := context.Background()

	id, _ := reg.Create(ctx, "QUIZ01")
	_, _ = reg.AddParticipant(ctx, id, "Ann")

	first, _ := reg.Get(ctx, id)
	first.Participants[0].Score = 999
	first.IsQuizStarted = true

	second, _ := reg.Get(ctx, id)
	if second.Participants[0].Score != 0 {
		t.Errorf("snapshot mutation leaked score %d into the store", second.Participants[0].Score)
	}
	if second.IsQuizStarted {
		t.Error("snapshot mutation leaked started flag into the store")
	}
}
