package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"party-trivia-service/internal/domain"
)

const (
	sessionCodeLen   = 8
	sessionKeyPrefix = "trivia:session:"
)

// SessionRegistry keeps sessions as JSON documents in Redis. Mutations are
// read-modify-write cycles serialized through a store mutex, which preserves
// the "participant list reflects completed add/remove calls" invariant
// within a single process. The TTL refreshes on every write, so only idle
// sessions expire.
type SessionRegistry struct {
	client *redis.Client
	ttl    time.Duration
	clock  func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSessionRegistry(client *redis.Client, ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		client: client,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *SessionRegistry) Create(ctx context.Context, quizID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		id := randomCode(r.rnd, sessionCodeLen)
		session := domain.Session{
			ID:                   id,
			QuizID:               quizID,
			CreatedAt:            r.clock(),
			CurrentQuestionIndex: 0,
			Participants:         []domain.Participant{},
			IsQuizStarted:        false,
		}
		data, err := json.Marshal(session)
		if err != nil {
			return "", fmt.Errorf("marshal session: %w", err)
		}
		claimed, err := r.client.SetNX(ctx, sessionKeyPrefix+id, data, r.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("create session: %w", err)
		}
		if claimed {
			return id, nil
		}
	}
}

func (r *SessionRegistry) Get(ctx context.Context, id string) (domain.Session, error) {
	return r.load(ctx, id)
}

func (r *SessionRegistry) AddParticipant(ctx context.Context, id, name string) (domain.Participant, error) {
	var participant domain.Participant
	err := r.update(ctx, id, func(session *domain.Session) error {
		if session.IsQuizStarted {
			return domain.ErrSessionStarted
		}
		participant = domain.NewParticipant(name, r.clock())
		session.Participants = append(session.Participants, participant)
		return nil
	})
	if err != nil {
		return domain.Participant{}, err
	}
	return participant, nil
}

func (r *SessionRegistry) RemoveParticipant(ctx context.Context, id, participantID string) error {
	return r.update(ctx, id, func(session *domain.Session) error {
		for i, p := range session.Participants {
			if p.ID == participantID {
				session.Participants = append(session.Participants[:i], session.Participants[i+1:]...)
				return nil
			}
		}
		return domain.ErrParticipantNotFound
	})
}

func (r *SessionRegistry) Start(ctx context.Context, id string) error {
	return r.update(ctx, id, func(session *domain.Session) error {
		session.IsQuizStarted = true
		return nil
	})
}

func (r *SessionRegistry) SetQuestionIndex(ctx context.Context, id string, index int) error {
	return r.update(ctx, id, func(session *domain.Session) error {
		session.CurrentQuestionIndex = index
		return nil
	})
}

func (r *SessionRegistry) SetScore(ctx context.Context, id, participantID string, score int) error {
	return r.update(ctx, id, func(session *domain.Session) error {
		for i := range session.Participants {
			if session.Participants[i].ID == participantID {
				session.Participants[i].Score = score
				return nil
			}
		}
		return domain.ErrParticipantNotFound
	})
}

func (r *SessionRegistry) load(ctx context.Context, id string) (domain.Session, error) {
	raw, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return session, nil
}

func (r *SessionRegistry) update(ctx context.Context, id string, mutate func(*domain.Session) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, err := r.load(ctx, id)
	if err != nil {
		return err
	}
	if err := mutate(&session); err != nil {
		return err
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+id, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func randomCode(rnd *rand.Rand, length int) string {
	code := make([]byte, length)
	for i := range code {
		code[i] = codeAlphabet[rnd.Intn(len(codeAlphabet))]
	}
	return string(code)
}
