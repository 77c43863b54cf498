package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"party-trivia-service/internal/app"
	"party-trivia-service/internal/domain"
	"party-trivia-service/internal/logger"
)

type QuizHandler struct {
	service *app.Service
	log     *logger.Logger
}

func NewQuizHandler(service *app.Service, log *logger.Logger) *QuizHandler {
	return &QuizHandler{service: service, log: log}
}

type createQuizRequest struct {
	Questions []domain.Question `json:"questions" binding:"required,min=1"`
}

func (h *QuizHandler) Create(c *gin.Context) {
	var req createQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Questions array is required"})
		return
	}

	quizID, err := h.service.SaveQuiz(c.Request.Context(), req.Questions)
	if err != nil {
		h.log.WithError(err).Error("save quiz failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save quiz"})
		return
	}

	h.log.WithQuiz(quizID).WithField("questions", len(req.Questions)).Info("quiz saved")
	c.JSON(http.StatusOK, gin.H{
		"quizId":  quizID,
		"message": "Quiz saved successfully",
	})
}

func (h *QuizHandler) GetByID(c *gin.Context) {
	quiz, err := h.service.GetQuiz(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrQuizNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}
	if err != nil {
		h.log.WithError(err).Error("fetch quiz failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quiz"})
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// List returns summaries only; full question lists would leak the
// odd-one-out answers before play.
func (h *QuizHandler) List(c *gin.Context) {
	summaries, err := h.service.ListQuizzes(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("list quizzes failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list quizzes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"quizzes": summaries,
		"total":   len(summaries),
	})
}
