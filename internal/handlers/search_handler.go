package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/railtraits/traits-backend/internal/models"
	"github.com/railtraits/traits-backend/internal/services"
)

// SearchHandler handles HTTP requests for connection search
type SearchHandler struct {
	service *services.SearchService
	logger  *logrus.Logger
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(service *services.SearchService, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{service: service, logger: logger}
}

// SearchConnections handles POST /api/v1/search
func (h *SearchHandler) SearchConnections(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	connections, err := h.service.SearchConnections(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	if connections == nil {
		connections = []models.Connection{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"connections": connections,
	})
}
