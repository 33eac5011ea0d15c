package domain

import "time"

// Order is a purchase event owned by one user. It is created together
// with its tickets in a single transaction and is immutable afterwards.
type Order struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	Tickets   []Ticket
}

type Ticket struct {
	ID       int64
	Row      int
	Seat     int
	FlightID int64
	OrderID  int64

	// Flight carries the list-shaped flight for the order listing view.
	Flight *Flight
}

// TicketRequest is one requested seat inside an order-creation call.
type TicketRequest struct {
	FlightID int64
	Row      int
	Seat     int
}

// ValidateTicket checks that a seat fits the airplane's grid. The row
// dimension is checked before the seat dimension so that the reported
// field is deterministic when both are out of range.
func ValidateTicket(row, seat int, airplane Airplane) error {
	checks := []struct {
		value int
		field string
		max   int
	}{
		{row, "row", airplane.Rows},
		{seat, "seat", airplane.SeatsInRow},
	}
	for _, c := range checks {
		if c.value < 1 || c.value > c.max {
			return &SeatOutOfRangeError{
				TicketIndex: -1,
				Field:       c.field,
				Value:       c.value,
				Min:         1,
				Max:         c.max,
			}
		}
	}
	return nil
}
