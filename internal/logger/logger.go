// Package logger builds the service-wide structured logger. One instance is
// constructed at startup and passed down; packages never log through
// ambient globals.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus with the service field pre-applied.
type Logger struct {
	*logrus.Entry
}

// New creates a JSON logger. The level comes from LOG_LEVEL (debug, info,
// warn, error), defaulting to info.
func New(serviceName string) *Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	log.SetOutput(os.Stdout)

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return &Logger{Entry: log.WithField("service", serviceName)}
}

// WithSession scopes log entries to a session id.
func (l *Logger) WithSession(sessionID string) *Logger {
	return &Logger{Entry: l.WithField("session_id", sessionID)}
}

// WithQuiz scopes log entries to a quiz id.
func (l *Logger) WithQuiz(quizID string) *Logger {
	return &Logger{Entry: l.WithField("quiz_id", quizID)}
}
