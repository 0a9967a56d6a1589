package models

import "errors"

// TrainStatus represents the operational status of a train.
type TrainStatus string

const (
	TrainStatusOperational TrainStatus = "OPERATIONAL"
	TrainStatusDelayed     TrainStatus = "DELAYED"
	TrainStatusBroken      TrainStatus = "BROKEN"
)

// Valid reports whether the status is one of the known values.
func (s TrainStatus) Valid() bool {
	switch s {
	case TrainStatusOperational, TrainStatusDelayed, TrainStatusBroken:
		return true
	}
	return false
}

// Train represents a train with a finite seat capacity. Deleting a train
// cascades to its schedules, trips, tickets and reservations.
type Train struct {
	ID       int64       `json:"train_id" db:"train_id"`
	Name     string      `json:"train_name" db:"train_name"`
	Capacity int         `json:"capacity" db:"capacity"`
	Status   TrainStatus `json:"status" db:"status"`
}

// AddTrainRequest is the payload for creating a train.
type AddTrainRequest struct {
	Name     string `json:"train_name" binding:"required"`
	Capacity int    `json:"capacity" binding:"required"`
	Status   string `json:"status" binding:"required"`
}

// Validate validates the add train request.
func (r *AddTrainRequest) Validate() error {
	if r.Capacity <= 0 {
		return errors.New("capacity must be a positive integer")
	}
	if !TrainStatus(r.Status).Valid() {
		return errors.New("status must be one of OPERATIONAL, DELAYED, BROKEN")
	}
	return nil
}

// UpdateTrainRequest carries optional new details for a train. Nil fields are
// left unchanged.
type UpdateTrainRequest struct {
	Capacity *int    `json:"capacity,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// Validate validates the update train request.
func (r *UpdateTrainRequest) Validate() error {
	if r.Capacity != nil && *r.Capacity <= 0 {
		return errors.New("capacity must be a positive integer")
	}
	if r.Status != nil && !TrainStatus(*r.Status).Valid() {
		return errors.New("status must be one of OPERATIONAL, DELAYED, BROKEN")
	}
	return nil
}
