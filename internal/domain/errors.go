package domain

import "errors"

var (
	// ErrQuizNotFound indicates the referenced quiz code is unknown.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrSessionNotFound indicates the referenced session code is unknown.
	ErrSessionNotFound = errors.New("session not found")
	// ErrParticipantNotFound indicates the participant is not in the session.
	ErrParticipantNotFound = errors.New("participant not found in session")
	// ErrSessionStarted rejects joins once the roster has been locked.
	ErrSessionStarted = errors.New("session already started")
	// ErrQuestionIndexOutOfRange rejects question pointers beyond the quiz.
	ErrQuestionIndexOutOfRange = errors.New("question index out of range")
)
