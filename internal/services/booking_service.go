package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/railtraits/traits-backend/internal/database"
	"github.com/railtraits/traits-backend/internal/models"
)

// BookingService sells tickets and optional seat reservations. The capacity
// check and the reservation insert run in one serialisable transaction in the
// repository; a lost race surfaces as a retryable Conflict.
type BookingService struct {
	users   *database.UserRepository
	tickets *database.TicketRepository
	logger  *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(users *database.UserRepository, tickets *database.TicketRepository, logger *logrus.Logger) *BookingService {
	return &BookingService{users: users, tickets: tickets, logger: logger}
}

// BuyTicket purchases a ticket for the given trip leg and, when requested,
// reserves a seat against the train's capacity. The returned ticket carries
// its trigger-computed price whether or not a seat was reserved, and the
// ticket ID is the uniform return value.
func (s *BookingService) BuyTicket(ctx context.Context, email string, tripID int64, alsoReserveSeat bool) (*models.Ticket, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: user %s does not exist", ErrNotFound, email)
		}
		return nil, err
	}

	ticket, err := s.tickets.BuyTicket(ctx, user.ID, tripID, alsoReserveSeat)
	if err != nil {
		if errors.Is(err, database.ErrNoCapacity) {
			return nil, invalidArgf("no seats left on trip %d", tripID)
		}
		return nil, classifyStoreError(err, "")
	}

	s.logger.WithFields(logrus.Fields{
		"ticket_id": ticket.ID,
		"trip_id":   tripID,
		"reserved":  alsoReserveSeat,
		"price":     ticket.Price,
	}).Info("Ticket purchased")
	return ticket, nil
}

// GetPurchaseHistory returns the user's purchases, newest first. An unknown
// user yields an empty list, not an error.
func (s *BookingService) GetPurchaseHistory(ctx context.Context, email string) ([]models.Purchase, error) {
	history, err := s.tickets.PurchaseHistory(email)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []models.Purchase{}
	}
	return history, nil
}
