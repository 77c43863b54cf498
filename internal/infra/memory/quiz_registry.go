package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"party-trivia-service/internal/domain"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	quizCodeLen  = 6
)

// QuizRegistry is an in-memory implementation of app.QuizRegistry. Quizzes
// are append-only and live for the process lifetime.
type QuizRegistry struct {
	clock func() time.Time

	mu      sync.RWMutex
	rnd     *rand.Rand
	quizzes map[string]domain.Quiz
}

func NewQuizRegistry() *QuizRegistry {
	return &QuizRegistry{
		clock:   time.Now,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		quizzes: make(map[string]domain.Quiz),
	}
}

// Save stores the questions under a fresh 6-character code. Codes are
// redrawn until unused so a collision can never overwrite a prior quiz.
func (r *QuizRegistry) Save(_ context.Context, questions []domain.Question) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := randomCode(r.rnd, quizCodeLen)
	for _, taken := r.quizzes[id]; taken; _, taken = r.quizzes[id] {
		id = randomCode(r.rnd, quizCodeLen)
	}

	qs := make([]domain.Question, len(questions))
	copy(qs, questions)
	r.quizzes[id] = domain.Quiz{
		ID:        id,
		Questions: qs,
		CreatedAt: r.clock(),
	}
	return id, nil
}

func (r *QuizRegistry) Get(_ context.Context, id string) (domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	quiz, ok := r.quizzes[id]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz, nil
}

func (r *QuizRegistry) Exists(_ context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.quizzes[id]
	return ok, nil
}

// ListAll returns quizzes most recent first.
func (r *QuizRegistry) ListAll(_ context.Context) ([]domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.Quiz, 0, len(r.quizzes))
	for _, quiz := range r.quizzes {
		all = append(all, quiz)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

func randomCode(rnd *rand.Rand, length int) string {
	code := make([]byte, length)
	for i := range code {
		code[i] = codeAlphabet[rnd.Intn(len(codeAlphabet))]
	}
	return string(code)
}
