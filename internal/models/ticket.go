package models

import "time"

// Ticket is proof of purchase for one trip leg. The price is computed by the
// relational store's before-insert trigger from the leg duration and is
// immutable afterwards.
type Ticket struct {
	ID           int64     `json:"ticket_id" db:"ticket_id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	TripID       int64     `json:"trip_id" db:"trip_id"`
	BookingTime  time.Time `json:"booking_time" db:"booking_time"`
	ReservedSeat bool      `json:"reserved_seat" db:"reserved_seat"`
	Price        int       `json:"price" db:"price"`
}

// Reservation is a capacity-consuming seat hold attached to a ticket. A trip
// never carries more reservations than its train's capacity.
type Reservation struct {
	ID       int64 `json:"reservation_id" db:"reservation_id"`
	TicketID int64 `json:"ticket_id" db:"ticket_id"`
}

// BuyTicketRequest is the payload for purchasing a ticket.
type BuyTicketRequest struct {
	Email           string `json:"email" binding:"required"`
	TripID          int64  `json:"trip_id" binding:"required"`
	AlsoReserveSeat bool   `json:"also_reserve_seat"`
}
