package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"party-trivia-service/internal/app"
	"party-trivia-service/internal/generator"
	"party-trivia-service/internal/infra/deepseek"
	"party-trivia-service/internal/logger"
	"party-trivia-service/internal/metrics"
)

type GenerateHandler struct {
	service *app.Service
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewGenerateHandler(service *app.Service, log *logger.Logger, m *metrics.Metrics) *GenerateHandler {
	return &GenerateHandler{service: service, log: log, metrics: m}
}

type generateRequest struct {
	// Pointer so a missing count and an explicit zero both fail cleanly:
	// missing at binding, zero at the generator's range check.
	Count       *int   `json:"count" binding:"required"`
	UserMessage string `json:"userMessage"`
}

// Generate produces count questions. Malformed or out-of-range input is
// rejected before any upstream call happens.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Count must be a number between 1 and 20"})
		return
	}

	start := time.Now()
	questions, err := h.service.GenerateQuestions(c.Request.Context(), *req.Count, req.UserMessage)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		h.metrics.ObserveGeneration("success", elapsed)
		h.log.WithField("count", len(questions)).Info("generated questions")
		c.JSON(http.StatusOK, gin.H{
			"questions": questions,
			"count":     len(questions),
		})
	case errors.Is(err, generator.ErrCountOutOfRange):
		h.metrics.ObserveGeneration("bad_request", elapsed)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Count must be a number between 1 and 20"})
	case errors.Is(err, deepseek.ErrMissingAPIKey):
		h.metrics.ObserveGeneration("misconfigured", elapsed)
		h.log.Error("generation rejected: missing api key")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DEEPSEEK_API_KEY not configured"})
	default:
		h.metrics.ObserveGeneration("failure", elapsed)
		h.log.WithError(err).Error("question generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate questions",
			"details": err.Error(),
		})
	}
}
