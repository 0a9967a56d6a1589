package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/railtraits/traits-backend/internal/models"
	"github.com/railtraits/traits-backend/internal/services"
)

// BookingHandler handles HTTP requests for tickets and purchase history
type BookingHandler struct {
	service *services.BookingService
	logger  *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(service *services.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{service: service, logger: logger}
}

// BuyTicket handles POST /api/v1/tickets
func (h *BookingHandler) BuyTicket(c *gin.Context) {
	var req models.BuyTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ticket, err := h.service.BuyTicket(c.Request.Context(), req.Email, req.TripID, req.AlsoReserveSeat)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "ticket": ticket})
}

// GetPurchaseHistory handles GET /api/v1/users/:email/purchases
func (h *BookingHandler) GetPurchaseHistory(c *gin.Context) {
	history, err := h.service.GetPurchaseHistory(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "purchases": history})
}
