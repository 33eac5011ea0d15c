package domain

import "time"

type Route struct {
	ID            int64
	SourceID      int64
	DestinationID int64
	Distance      int

	// Airport and city display names, filled by list and detail queries.
	SourceName      string
	DestinationName string
	SourceCity      string
	DestinationCity string

	// Flights is populated only for the detail view.
	Flights []Flight
}

type Flight struct {
	ID            int64
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	ArrivalTime   time.Time
	Crew          []Crew

	// Display fields filled by list and detail queries.
	SourceCity      string
	DestinationCity string
	AirplaneName    string

	// Airplane is resolved for the detail view and for ticket validation.
	Airplane *Airplane

	// TicketsAvailable is rows*seats_in_row minus sold tickets, computed
	// by the listing query on every read.
	TicketsAvailable int

	// TakenSeats lists sold (row, seat) pairs, detail view only.
	TakenSeats []SeatRef
}

// SeatRef identifies one seat of an airplane grid.
type SeatRef struct {
	Row  int
	Seat int
}
