package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/railtraits/traits-backend/internal/models"
	"github.com/railtraits/traits-backend/internal/services"
)

// AdminHandler handles the operator operations: stations, segments, trains
// and schedules. Its services are wired to the admin database handle.
type AdminHandler struct {
	network   *services.NetworkService
	trains    *services.TrainService
	schedules *services.ScheduleService
	logger    *logrus.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	network *services.NetworkService,
	trains *services.TrainService,
	schedules *services.ScheduleService,
	logger *logrus.Logger,
) *AdminHandler {
	return &AdminHandler{
		network:   network,
		trains:    trains,
		schedules: schedules,
		logger:    logger,
	}
}

// AddStation handles POST /api/v1/admin/stations
func (h *AdminHandler) AddStation(c *gin.Context) {
	var req models.AddStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	station, err := h.network.AddStation(c.Request.Context(), models.NewKey(req.Name), req.Details)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "station": station})
}

// ConnectStations handles POST /api/v1/admin/connections
func (h *AdminHandler) ConnectStations(c *gin.Context) {
	var req models.ConnectStationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	err := h.network.ConnectStations(
		c.Request.Context(),
		models.NewKey(req.StartingStation),
		models.NewKey(req.EndingStation),
		req.TravelTime,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success"})
}

// AddTrain handles POST /api/v1/admin/trains
func (h *AdminHandler) AddTrain(c *gin.Context) {
	var req models.AddTrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondBadRequest(c, err)
		return
	}

	train, err := h.trains.AddTrain(
		c.Request.Context(),
		models.NewKey(req.Name),
		req.Capacity,
		models.TrainStatus(req.Status),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "train": train})
}

// UpdateTrain handles PATCH /api/v1/admin/trains/:name
func (h *AdminHandler) UpdateTrain(c *gin.Context) {
	var req models.UpdateTrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondBadRequest(c, err)
		return
	}

	var status *models.TrainStatus
	if req.Status != nil {
		s := models.TrainStatus(*req.Status)
		status = &s
	}

	err := h.trains.UpdateTrainDetails(c.Request.Context(), models.NewKey(c.Param("name")), req.Capacity, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DeleteTrain handles DELETE /api/v1/admin/trains/:name
func (h *AdminHandler) DeleteTrain(c *gin.Context) {
	if err := h.trains.DeleteTrain(c.Request.Context(), models.NewKey(c.Param("name"))); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// AddSchedule handles POST /api/v1/admin/schedules
func (h *AdminHandler) AddSchedule(c *gin.Context) {
	var req models.AddScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	validFrom, validUntil, err := req.Window()
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	schedule, err := h.schedules.AddSchedule(
		c.Request.Context(),
		models.NewKey(req.TrainName),
		req.StartingHours, req.StartingMinutes,
		req.StopList(),
		validFrom, validUntil,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "schedule": schedule})
}
