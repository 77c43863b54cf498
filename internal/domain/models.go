package domain

import "time"

// Option is one labeled statement inside a question. Value is the answer key
// ("A".."D") and Label carries the statement text.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Question models an odd-one-out prompt: exactly four options, three true
// statements and one false. Answer holds the Value of the false option.
type Question struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
	Answer   string   `json:"answer"`
}

// Quiz is an immutable ordered batch of questions. Order is presentation
// order.
type Quiz struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"createdAt"`
}

// QuizSummary is the listing view of a quiz. It omits the questions so the
// odd-one-out answers stay hidden until play.
type QuizSummary struct {
	ID            string    `json:"id"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Participant is a player inside a session.
type Participant struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Avatar  string    `json:"avatar"`
	Score   int       `json:"score"`
	AddedAt time.Time `json:"addedAt"`
}

// Session is a live play-through of a quiz. Participants are kept in join
// order; IsQuizStarted is a one-way latch.
type Session struct {
	ID                   string        `json:"id"`
	QuizID               string        `json:"quizId"`
	CreatedAt            time.Time     `json:"createdAt"`
	CurrentQuestionIndex int           `json:"currentQuestionIndex"`
	Participants         []Participant `json:"participants"`
	IsQuizStarted        bool          `json:"isQuizStarted"`
}

// ScoreboardEntry is a display-ready view of a participant.
type ScoreboardEntry struct {
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
	Avatar        string `json:"avatar"`
	Score         int    `json:"score"`
}

// Scoreboard captures the ordered standings for a session.
type Scoreboard struct {
	SessionID string            `json:"sessionId"`
	Entries   []ScoreboardEntry `json:"entries"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
