package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/railtraits/traits-backend/internal/models"
	"github.com/railtraits/traits-backend/internal/services"
)

// UserHandler handles HTTP requests for user accounts and train status
type UserHandler struct {
	users  *services.UserService
	trains *services.TrainService
	logger *logrus.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *services.UserService, trains *services.TrainService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{users: users, trains: trains, logger: logger}
}

// AddUser handles POST /api/v1/users
func (h *UserHandler) AddUser(c *gin.Context) {
	var req models.AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := h.users.AddUser(c.Request.Context(), req.Email, req.Details)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "user": user})
}

// DeleteUser handles DELETE /api/v1/users/:email
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.users.DeleteUser(c.Request.Context(), c.Param("email")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetTrainStatus handles GET /api/v1/trains/:name/status
// A missing train is not an error; the status field is null.
func (h *UserHandler) GetTrainStatus(c *gin.Context) {
	status, err := h.trains.GetTrainCurrentStatus(c.Request.Context(), models.NewKey(c.Param("name")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "train_status": status})
}
