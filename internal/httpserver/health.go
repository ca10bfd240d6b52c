package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"pastalink-bot/pkg/response"
)

const (
	HealthMessage = "Links served al dente"
	HealthVersion = "1.0.0"
	ServiceName   = "pastalink-bot"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck reports ready once the catalog has entries and the model
// server answers.
// @Summary Readiness Check
// @Description Catalog loaded and classifier reachable
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is ready"
// @Failure 503 {object} response.Resp "Dependencies not ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), srv.readyTimeout)
	defer cancel()

	entries := srv.catalog.Len()
	health := srv.classifier.HealthCheck(ctx)

	body := gin.H{
		"service":         ServiceName,
		"version":         HealthVersion,
		"catalog_entries": entries,
		"classifier":      health,
	}

	if entries == 0 || !health.Healthy {
		body["status"] = "not_ready"
		response.Unavailable(c, body)
		return
	}

	body["status"] = "ready"
	response.OK(c, body)
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"version": HealthVersion,
		"service": ServiceName,
	})
}
