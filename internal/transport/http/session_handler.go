package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"party-trivia-service/internal/app"
	"party-trivia-service/internal/domain"
	"party-trivia-service/internal/logger"
)

type SessionHandler struct {
	service *app.Service
	log     *logger.Logger
}

func NewSessionHandler(service *app.Service, log *logger.Logger) *SessionHandler {
	return &SessionHandler{service: service, log: log}
}

type createSessionRequest struct {
	QuizID string `json:"quizId" binding:"required"`
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quiz ID is required"})
		return
	}

	sessionID, err := h.service.CreateSession(c.Request.Context(), req.QuizID)
	if errors.Is(err, domain.ErrQuizNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}
	if err != nil {
		h.log.WithError(err).Error("create session failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	h.log.WithSession(sessionID).WithQuiz(req.QuizID).Info("session created")
	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"message":   "Session created successfully",
	})
}

func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.service.GetSession(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		h.log.WithError(err).Error("fetch session failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch session"})
		return
	}
	c.JSON(http.StatusOK, session)
}

type addParticipantRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *SessionHandler) AddParticipant(c *gin.Context) {
	var req addParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required and must be a string"})
		return
	}

	participant, err := h.service.Join(c.Request.Context(), c.Param("id"), req.Name)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, domain.ErrSessionStarted):
		c.JSON(http.StatusConflict, gin.H{"error": "Session already started"})
	case err != nil:
		h.log.WithError(err).Error("add participant failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add participant"})
	default:
		c.JSON(http.StatusOK, participant)
	}
}

func (h *SessionHandler) RemoveParticipant(c *gin.Context) {
	err := h.service.Leave(c.Request.Context(), c.Param("id"), c.Param("participantId"))
	if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrParticipantNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session or participant not found"})
		return
	}
	if err != nil {
		h.log.WithError(err).Error("remove participant failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove participant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *SessionHandler) Start(c *gin.Context) {
	err := h.service.Start(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		h.log.WithError(err).Error("start session failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start quiz"})
		return
	}
	h.log.WithSession(c.Param("id")).Info("session started")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type setQuestionRequest struct {
	Index *int `json:"index" binding:"required"`
}

func (h *SessionHandler) SetQuestion(c *gin.Context) {
	var req setQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Index is required"})
		return
	}

	err := h.service.AdvanceQuestion(c.Request.Context(), c.Param("id"), *req.Index)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrQuizNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, domain.ErrQuestionIndexOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question index out of range"})
	case err != nil:
		h.log.WithError(err).Error("advance question failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance question"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

type setScoreRequest struct {
	Score *int `json:"score" binding:"required"`
}

func (h *SessionHandler) SetScore(c *gin.Context) {
	var req setScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Score is required"})
		return
	}

	err := h.service.SetScore(c.Request.Context(), c.Param("id"), c.Param("participantId"), *req.Score)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrParticipantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session or participant not found"})
	case err != nil:
		h.log.WithError(err).Error("update score failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update score"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
