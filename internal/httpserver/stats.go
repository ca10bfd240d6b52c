package httpserver

import (
	"time"

	"github.com/gin-gonic/gin"

	"pastalink-bot/internal/conversation"
	"pastalink-bot/pkg/response"
)

type statsResponse struct {
	conversation.Stats
	GeneratedAt response.DateTime `json:"generated_at"`
}

// stats mirrors the /stats bot command.
// @Summary Bot statistics
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /api/v1/stats [get]
func (srv HTTPServer) stats(c *gin.Context) {
	response.OK(c, statsResponse{
		Stats:       srv.conversation.Stats(),
		GeneratedAt: response.DateTime(time.Now()),
	})
}

// validateCatalog reports dataset integrity problems.
// @Summary Catalog validation report
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /api/v1/catalog/validate [get]
func (srv HTTPServer) validateCatalog(c *gin.Context) {
	response.OK(c, srv.catalog.Validate())
}
