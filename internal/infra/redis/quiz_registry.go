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
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	quizCodeLen  = 6

	quizKeyPrefix = "trivia:quiz:"
	quizIndexKey  = "trivia:quiz:index"
)

// QuizRegistry keeps quizzes in Redis. A ttl of zero keeps entries for the
// Redis lifetime; a positive ttl gives long-running deployments an eviction
// policy instead of unbounded growth.
type QuizRegistry struct {
	client *redis.Client
	ttl    time.Duration
	clock  func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuizRegistry(client *redis.Client, ttl time.Duration) *QuizRegistry {
	return &QuizRegistry{
		client: client,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Save claims a fresh code with SETNX, so a colliding draw can never
// overwrite an existing quiz.
func (r *QuizRegistry) Save(ctx context.Context, questions []domain.Question) (string, error) {
	for {
		id := r.randomCode(quizCodeLen)
		quiz := domain.Quiz{
			ID:        id,
			Questions: questions,
			CreatedAt: r.clock(),
		}
		data, err := json.Marshal(quiz)
		if err != nil {
			return "", fmt.Errorf("marshal quiz: %w", err)
		}

		claimed, err := r.client.SetNX(ctx, quizKeyPrefix+id, data, r.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("save quiz: %w", err)
		}
		if !claimed {
			continue
		}

		err = r.client.ZAdd(ctx, quizIndexKey, redis.Z{
			Score:  float64(quiz.CreatedAt.UnixNano()),
			Member: id,
		}).Err()
		if err != nil {
			return "", fmt.Errorf("index quiz: %w", err)
		}
		return id, nil
	}
}

func (r *QuizRegistry) Get(ctx context.Context, id string) (domain.Quiz, error) {
	raw, err := r.client.Get(ctx, quizKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("get quiz: %w", err)
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	return quiz, nil
}

func (r *QuizRegistry) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, quizKeyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("quiz exists: %w", err)
	}
	return n > 0, nil
}

// ListAll walks the index newest first. Index members whose quiz has been
// evicted by TTL are dropped from the index along the way.
func (r *QuizRegistry) ListAll(ctx context.Context) ([]domain.Quiz, error) {
	ids, err := r.client.ZRevRange(ctx, quizIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}

	all := make([]domain.Quiz, 0, len(ids))
	for _, id := range ids {
		quiz, err := r.Get(ctx, id)
		if err == domain.ErrQuizNotFound {
			_ = r.client.ZRem(ctx, quizIndexKey, id).Err()
			continue
		}
		if err != nil {
			return nil, err
		}
		all = append(all, quiz)
	}
	return all, nil
}

func (r *QuizRegistry) randomCode(length int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	code := make([]byte, length)
	for i := range code {
		code[i] = codeAlphabet[r.rnd.Intn(len(codeAlphabet))]
	}
	return string(code)
}
