package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"party-trivia-service/internal/domain"
)

const sessionCodeLen = 8

// SessionRegistry is an in-memory implementation of app.SessionRegistry.
// Every read-modify-write happens under the registry lock, which gives the
// per-session mutual exclusion the participant list invariant needs.
type SessionRegistry struct {
	clock func() time.Time

	mu       sync.RWMutex
	rnd      *rand.Rand
	sessions map[string]*domain.Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		clock:    time.Now,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		sessions: make(map[string]*domain.Session),
	}
}

// Create opens a session referencing quizID. The quiz is not validated here;
// the app service pre-checks existence against the quiz registry.
func (r *SessionRegistry) Create(_ context.Context, quizID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := randomCode(r.rnd, sessionCodeLen)
	for _, taken := r.sessions[id]; taken; _, taken = r.sessions[id] {
		id = randomCode(r.rnd, sessionCodeLen)
	}

	r.sessions[id] = &domain.Session{
		ID:                   id,
		QuizID:               quizID,
		CreatedAt:            r.clock(),
		CurrentQuestionIndex: 0,
		Participants:         []domain.Participant{},
		IsQuizStarted:        false,
	}
	return id, nil
}

// Get returns a snapshot copy; mutating the result does not touch the store.
func (r *SessionRegistry) Get(_ context.Context, id string) (domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return snapshot(session), nil
}

// AddParticipant appends a new participant in join order. Joins are rejected
// once the session has started.
func (r *SessionRegistry) AddParticipant(_ context.Context, id, name string) (domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return domain.Participant{}, domain.ErrSessionNotFound
	}
	if session.IsQuizStarted {
		return domain.Participant{}, domain.ErrSessionStarted
	}

	participant := domain.NewParticipant(name, r.clock())
	session.Participants = append(session.Participants, participant)
	return participant, nil
}

// RemoveParticipant is idempotent-safe: removing an already-removed id
// reports ErrParticipantNotFound without side effects.
func (r *SessionRegistry) RemoveParticipant(_ context.Context, id, participantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}

	for i, p := range session.Participants {
		if p.ID == participantID {
			session.Participants = append(session.Participants[:i], session.Participants[i+1:]...)
			return nil
		}
	}
	return domain.ErrParticipantNotFound
}

// Start latches IsQuizStarted. Calling it again is a no-op, not an error.
func (r *SessionRegistry) Start(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.IsQuizStarted = true
	return nil
}

// SetQuestionIndex sets the pointer directly. The registry holds no
// reference to the quiz, so bounds checking is the caller's job.
func (r *SessionRegistry) SetQuestionIndex(_ context.Context, id string, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.CurrentQuestionIndex = index
	return nil
}

// SetScore replaces the participant's score. Absolute set, last writer wins.
func (r *SessionRegistry) SetScore(_ context.Context, id, participantID string, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	for i := range session.Participants {
		if session.Participants[i].ID == participantID {
			session.Participants[i].Score = score
			return nil
		}
	}
	return domain.ErrParticipantNotFound
}

func snapshot(session *domain.Session) domain.Session {
	out := *session
	out.Participants = make([]domain.Participant, len(session.Participants))
	copy(out.Participants, session.Participants)
	return out
}
