package app

import (
	"context"
	"errors"
	"time"

	"party-trivia-service/internal/domain"
)

// ErrNoQuestions rejects quiz saves with an empty question list.
var ErrNoQuestions = errors.New("questions are required")

// QuizRegistry stores finalized quizzes (in-memory, Redis, etc).
type QuizRegistry interface {
	Save(ctx context.Context, questions []domain.Question) (string, error)
	Get(ctx context.Context, id string) (domain.Quiz, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListAll(ctx context.Context) ([]domain.Quiz, error)
}

// SessionRegistry stores live play sessions and their participants.
type SessionRegistry interface {
	Create(ctx context.Context, quizID string) (string, error)
	Get(ctx context.Context, id string) (domain.Session, error)
	AddParticipant(ctx context.Context, id, name string) (domain.Participant, error)
	RemoveParticipant(ctx context.Context, id, participantID string) error
	Start(ctx context.Context, id string) error
	SetQuestionIndex(ctx context.Context, id string, index int) error
	SetScore(ctx context.Context, id, participantID string, score int) error
}

// QuestionGenerator produces validated question batches.
type QuestionGenerator interface {
	Generate(ctx context.Context, count int, userMessage string) ([]domain.Question, error)
}

// Service contains the trivia use cases: content generation, quiz storage,
// and the session/participant lifecycle.
type Service struct {
	quizzes   QuizRegistry
	sessions  SessionRegistry
	generator QuestionGenerator
	now       func() time.Time

	watchers *watcherHub
}

func NewService(quizzes QuizRegistry, sessions SessionRegistry, generator QuestionGenerator) *Service {
	return &Service{
		quizzes:   quizzes,
		sessions:  sessions,
		generator: generator,
		now:       time.Now,
		watchers:  newWatcherHub(),
	}
}

// GenerateQuestions delegates to the content generator. Nothing is persisted
// here; the caller reviews the batch and saves it explicitly.
func (s *Service) GenerateQuestions(ctx context.Context, count int, userMessage string) ([]domain.Question, error) {
	return s.generator.Generate(ctx, count, userMessage)
}

// SaveQuiz persists a non-empty question list and returns the quiz code.
func (s *Service) SaveQuiz(ctx context.Context, questions []domain.Question) (string, error) {
	if len(questions) == 0 {
		return "", ErrNoQuestions
	}
	return s.quizzes.Save(ctx, questions)
}

func (s *Service) GetQuiz(ctx context.Context, id string) (domain.Quiz, error) {
	return s.quizzes.Get(ctx, id)
}

// ListQuizzes returns summaries only. Full question lists stay behind GetQuiz
// so answers are not exposed by the listing.
func (s *Service) ListQuizzes(ctx context.Context) ([]domain.QuizSummary, error) {
	all, err := s.quizzes.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.QuizSummary, 0, len(all))
	for _, quiz := range all {
		summaries = append(summaries, domain.QuizSummary{
			ID:            quiz.ID,
			QuestionCount: len(quiz.Questions),
			CreatedAt:     quiz.CreatedAt,
		})
	}
	return summaries, nil
}

// CreateSession opens a session against an existing quiz. The registry
// itself does not validate the reference, so the check happens here.
func (s *Service) CreateSession(ctx context.Context, quizID string) (string, error) {
	ok, err := s.quizzes.Exists(ctx, quizID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrQuizNotFound
	}
	return s.sessions.Create(ctx, quizID)
}

func (s *Service) GetSession(ctx context.Context, id string) (domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

// Join adds a participant and broadcasts the refreshed scoreboard.
func (s *Service) Join(ctx context.Context, sessionID, name string) (domain.Participant, error) {
	participant, err := s.sessions.AddParticipant(ctx, sessionID, name)
	if err != nil {
		return domain.Participant{}, err
	}
	s.publish(ctx, sessionID)
	return participant, nil
}

// Leave removes a participant. Leaving stays allowed after start; people
// drop out mid-game.
func (s *Service) Leave(ctx context.Context, sessionID, participantID string) error {
	if err := s.sessions.RemoveParticipant(ctx, sessionID, participantID); err != nil {
		return err
	}
	s.publish(ctx, sessionID)
	return nil
}

// Start locks the roster. Calling it on an already-started session succeeds.
func (s *Service) Start(ctx context.Context, sessionID string) error {
	return s.sessions.Start(ctx, sessionID)
}

// AdvanceQuestion moves the session pointer. The registry holds no quiz
// reference, so the bounds check against the question count lives here.
func (s *Service) AdvanceQuestion(ctx context.Context, sessionID string, index int) error {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	quiz, err := s.quizzes.Get(ctx, session.QuizID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(quiz.Questions) {
		return domain.ErrQuestionIndexOutOfRange
	}
	return s.sessions.SetQuestionIndex(ctx, sessionID, index)
}

// SetScore replaces a participant's score and broadcasts the scoreboard.
// Absolute set, last writer wins.
func (s *Service) SetScore(ctx context.Context, sessionID, participantID string, score int) error {
	if err := s.sessions.SetScore(ctx, sessionID, participantID, score); err != nil {
		return err
	}
	s.publish(ctx, sessionID)
	return nil
}

// Scoreboard returns the session standings sorted for display: score
// descending, earlier joiners first on ties, then name.
func (s *Service) Scoreboard(ctx context.Context, sessionID string) (domain.Scoreboard, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Scoreboard{}, err
	}
	return s.buildScoreboard(session), nil
}

// Subscribe returns a channel receiving scoreboard updates for a session.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *Service) Subscribe(ctx context.Context, sessionID string) (<-chan domain.Scoreboard, func(), error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.watchers.subscribe(sessionID)
	ch <- s.buildScoreboard(session)
	return ch, cancel, nil
}

// publish is best-effort: a session deleted between the mutation and the
// snapshot simply drops the broadcast.
func (s *Service) publish(ctx context.Context, sessionID string) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return
	}
	s.watchers.broadcast(sessionID, s.buildScoreboard(session))
}
