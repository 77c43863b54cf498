package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"party-trivia-service/internal/app"
	"party-trivia-service/internal/logger"
	"party-trivia-service/internal/metrics"
)

// NewRouter wires the REST and websocket boundary. The boundary is the only
// layer that turns domain sentinels into HTTP status codes.
func NewRouter(service *app.Service, log *logger.Logger, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestMetrics(m), RequestLogger(log))

	generate := NewGenerateHandler(service, log, m)
	quiz := NewQuizHandler(service, log)
	session := NewSessionHandler(service, log)
	ws := NewWSHandler(service, log)

	router.POST("/questions/generate", generate.Generate)

	router.POST("/quiz", quiz.Create)
	router.GET("/quiz/list", quiz.List)
	router.GET("/quiz/:id", quiz.GetByID)

	router.POST("/session", session.Create)
	router.GET("/session/:id", session.Get)
	router.POST("/session/:id/participants", session.AddParticipant)
	router.DELETE("/session/:id/participants/:participantId", session.RemoveParticipant)
	router.POST("/session/:id/start", session.Start)
	router.PUT("/session/:id/question", session.SetQuestion)
	router.PUT("/session/:id/participants/:participantId/score", session.SetScore)
	router.GET("/session/:id/ws", ws.Serve)

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	return router
}
