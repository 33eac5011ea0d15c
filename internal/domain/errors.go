package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyTicketList rejects order-creation requests with no tickets.
var ErrEmptyTicketList = errors.New("order must contain at least one ticket")

// SeatOutOfRangeError reports a ticket whose row or seat does not fit the
// airplane grid. TicketIndex is the zero-based position inside the order
// request, or -1 when the ticket was validated standalone.
type SeatOutOfRangeError struct {
	TicketIndex int
	Field       string
	Value       int
	Min         int
	Max         int
}

func (e *SeatOutOfRangeError) Error() string {
	return fmt.Sprintf("%s number must be in available range: (%d, %d), got %d",
		e.Field, e.Min, e.Max, e.Value)
}

// SeatTakenError surfaces a (flight, row, seat) uniqueness violation.
type SeatTakenError struct {
	FlightID int64
	Row      int
	Seat     int
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat (row %d, seat %d) on flight %d is already taken",
		e.Row, e.Seat, e.FlightID)
}

// NotFoundError reports a missing referenced entity.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ValidationError reports malformed input outside the seat-grid checks.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	// ErrUnauthenticated means no valid identity was supplied.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the identity lacks the required privilege.
	ErrForbidden = errors.New("insufficient privileges")
	// ErrEmailTaken means the registration email is already in use.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials means login failed; it deliberately does not
	// say whether the email exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
