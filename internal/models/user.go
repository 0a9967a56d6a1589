package models

import (
	"errors"
	"regexp"
	"time"
)

// emailPattern is the shape a user identifier must match. Authentication
// beyond email-shaped identifiers is out of scope.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// ValidEmail reports whether the given string is an acceptable user email.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// User represents a registered customer.
type User struct {
	ID      int64  `json:"user_id" db:"user_id"`
	Email   string `json:"email" db:"email"`
	Details string `json:"details,omitempty" db:"details"`
}

// AddUserRequest is the payload for registering a user.
type AddUserRequest struct {
	Email   string `json:"email" binding:"required"`
	Details string `json:"details,omitempty"`
}

// Validate validates the add user request.
func (r *AddUserRequest) Validate() error {
	if !ValidEmail(r.Email) {
		return errors.New("email is malformed")
	}
	return nil
}

// Purchase is one row of a user's purchase history, read from the purchases
// view.
type Purchase struct {
	TicketID        int64     `json:"ticket_id" db:"ticket_id"`
	Email           string    `json:"email" db:"email"`
	TrainName       string    `json:"train_name" db:"train_name"`
	StartingStation string    `json:"starting_station" db:"starting_station"`
	EndingStation   string    `json:"ending_station" db:"ending_station"`
	TripDate        time.Time `json:"trip_date" db:"trip_date"`
	StartTime       string    `json:"start_time" db:"start_time"`
	EndTime         string    `json:"end_time" db:"end_time"`
	ReservedSeat    bool      `json:"reserved_seat" db:"reserved_seat"`
	Price           int       `json:"price" db:"price"`
	BookingTime     time.Time `json:"booking_time" db:"booking_time"`
}
