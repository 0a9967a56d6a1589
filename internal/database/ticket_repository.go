package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/railtraits/traits-backend/internal/models"
)

// ErrNoCapacity is returned when a seat reservation would exceed the train's
// capacity on that trip.
var ErrNoCapacity = errors.New("no seats left on this trip")

// TicketRepository handles database operations for tickets and reservations.
//
// Concurrency model: the count-then-insert sequence for seat reservations
// runs inside one SERIALIZABLE transaction, so two concurrent purchases of
// the last seat cannot both commit. The loser fails with a serialization
// error (SQLSTATE 40001) and may retry.
type TicketRepository struct {
	db DB
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// BuyTicket inserts a ticket for the given user and trip, and, when
// reserveSeat is set, a reservation against the train's capacity. Either both
// rows are written or neither. The returned ticket carries the price filled
// in by the store's pricing trigger.
func (r *TicketRepository) BuyTicket(ctx context.Context, userID, tripID int64, reserveSeat bool) (*models.Ticket, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ticket := &models.Ticket{UserID: userID, TripID: tripID, ReservedSeat: reserveSeat}

	insertTicket := `
		INSERT INTO tickets (user_id, trip_id, reserved_seat)
		VALUES ($1, $2, $3)
		RETURNING ticket_id, booking_time, price
	`

	err = tx.QueryRow(insertTicket, userID, tripID, reserveSeat).
		Scan(&ticket.ID, &ticket.BookingTime, &ticket.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ticket: %w", err)
	}

	if reserveSeat {
		countQuery := `
			SELECT count(res.reservation_id) AS reserved, tr.capacity
			FROM trips t
			JOIN trains tr ON tr.train_id = t.train_id
			LEFT JOIN tickets tk ON tk.trip_id = t.trip_id
			LEFT JOIN reservations res ON res.ticket_id = tk.ticket_id
			WHERE t.trip_id = $1
			GROUP BY tr.capacity
		`

		var reserved, capacity int
		if err := tx.QueryRow(countQuery, tripID).Scan(&reserved, &capacity); err != nil {
			return nil, fmt.Errorf("failed to count reservations: %w", err)
		}
		if reserved >= capacity {
			return nil, ErrNoCapacity
		}

		insertReservation := `
			INSERT INTO reservations (ticket_id)
			VALUES ($1)
		`
		if _, err := tx.Exec(insertReservation, ticket.ID); err != nil {
			return nil, fmt.Errorf("failed to insert reservation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit purchase: %w", err)
	}
	return ticket, nil
}

// PurchaseHistory returns the user's purchases, newest first. An unknown
// email yields an empty list.
func (r *TicketRepository) PurchaseHistory(email string) ([]models.Purchase, error) {
	query := `
		SELECT ticket_id, email, train_name, starting_station, ending_station,
			   trip_date, start_time::text AS start_time, end_time::text AS end_time,
			   reserved_seat, price, booking_time
		FROM purchases
		WHERE email = $1
		ORDER BY booking_time DESC
	`

	var history []models.Purchase
	if err := r.db.Select(&history, query, email); err != nil {
		return nil, fmt.Errorf("failed to load purchase history: %w", err)
	}
	return history, nil
}
