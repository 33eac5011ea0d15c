// Package projection shapes persisted entities into the representations
// each endpoint returns. Every function is a pure transformation: list
// views flatten one-hop relations to display labels, detail and create
// views keep references as ids. Nothing here validates or writes.
package projection

import (
	"time"

	"github.com/loplicat/airport-api-service/internal/domain"
)

type CountryView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func Country(c domain.Country) CountryView {
	return CountryView{ID: c.ID, Name: c.Name}
}

type CityListView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

func CityList(c domain.City) CityListView {
	return CityListView{ID: c.ID, Name: c.Name, Country: c.CountryName}
}

type CityCreateView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country int64  `json:"country"`
}

func CityCreate(c domain.City) CityCreateView {
	return CityCreateView{ID: c.ID, Name: c.Name, Country: c.CountryID}
}

type AirplaneTypeView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func AirplaneType(t domain.AirplaneType) AirplaneTypeView {
	return AirplaneTypeView{ID: t.ID, Name: t.Name}
}

type AirplaneListView struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Capacity     int     `json:"capacity"`
	AirplaneType *string `json:"airplane_type"`
	Image        *string `json:"image"`
}

func AirplaneList(a domain.Airplane) AirplaneListView {
	return AirplaneListView{
		ID:           a.ID,
		Name:         a.Name,
		Capacity:     a.Capacity(),
		AirplaneType: a.AirplaneTypeName,
		Image:        imageURL(a.ImagePath),
	}
}

type AirplaneDetailView struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Rows         int     `json:"rows"`
	SeatsInRow   int     `json:"seats_in_row"`
	Capacity     int     `json:"capacity"`
	AirplaneType *int64  `json:"airplane_type"`
	Image        *string `json:"image"`
}

func AirplaneDetail(a domain.Airplane) AirplaneDetailView {
	return AirplaneDetailView{
		ID:           a.ID,
		Name:         a.Name,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		Capacity:     a.Capacity(),
		AirplaneType: a.AirplaneTypeID,
		Image:        imageURL(a.ImagePath),
	}
}

type AirportListView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	City           string `json:"city"`
	ClosestBigCity string `json:"closest_big_city"`
}

func AirportList(a domain.Airport) AirportListView {
	return AirportListView{ID: a.ID, Name: a.Name, City: a.CityName, ClosestBigCity: a.ClosestBigCity}
}

type AirportCreateView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	City           int64  `json:"city"`
	ClosestBigCity string `json:"closest_big_city"`
}

func AirportCreate(a domain.Airport) AirportCreateView {
	return AirportCreateView{ID: a.ID, Name: a.Name, City: a.CityID, ClosestBigCity: a.ClosestBigCity}
}

type CrewView struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func CrewMember(c domain.Crew) CrewView {
	return CrewView{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName}
}

type RouteListView struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

func RouteList(r domain.Route) RouteListView {
	return RouteListView{ID: r.ID, Source: r.SourceName, Destination: r.DestinationName, Distance: r.Distance}
}

type RouteCreateView struct {
	ID          int64 `json:"id"`
	Source      int64 `json:"source"`
	Destination int64 `json:"destination"`
	Distance    int   `json:"distance"`
}

func RouteCreate(r domain.Route) RouteCreateView {
	return RouteCreateView{ID: r.ID, Source: r.SourceID, Destination: r.DestinationID, Distance: r.Distance}
}

type RouteDetailView struct {
	ID              int64              `json:"id"`
	Source          int64              `json:"source"`
	SourceCity      string             `json:"source_city"`
	Destination     int64              `json:"destination"`
	DestinationCity string             `json:"destination_city"`
	Distance        int                `json:"distance"`
	Flights         []FlightCreateView `json:"flights"`
}

func RouteDetail(r domain.Route) RouteDetailView {
	flights := make([]FlightCreateView, 0, len(r.Flights))
	for _, f := range r.Flights {
		flights = append(flights, FlightCreate(f))
	}
	return RouteDetailView{
		ID:              r.ID,
		Source:          r.SourceID,
		SourceCity:      r.SourceCity,
		Destination:     r.DestinationID,
		DestinationCity: r.DestinationCity,
		Distance:        r.Distance,
		Flights:         flights,
	}
}

type FlightCreateView struct {
	ID            int64     `json:"id"`
	Route         int64     `json:"route"`
	Airplane      int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Crew          []int64   `json:"crew"`
}

func FlightCreate(f domain.Flight) FlightCreateView {
	crew := make([]int64, 0, len(f.Crew))
	for _, c := range f.Crew {
		crew = append(crew, c.ID)
	}
	return FlightCreateView{
		ID:            f.ID,
		Route:         f.RouteID,
		Airplane:      f.AirplaneID,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		Crew:          crew,
	}
}

type FlightListView struct {
	ID               int64     `json:"id"`
	Source           string    `json:"source"`
	Destination      string    `json:"destination"`
	Airplane         string    `json:"airplane"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Crew             []string  `json:"crew"`
	TicketsAvailable int       `json:"tickets_available"`
}

func FlightList(f domain.Flight) FlightListView {
	crew := make([]string, 0, len(f.Crew))
	for _, c := range f.Crew {
		crew = append(crew, c.FullName())
	}
	return FlightListView{
		ID:               f.ID,
		Source:           f.SourceCity,
		Destination:      f.DestinationCity,
		Airplane:         f.AirplaneName,
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
		Crew:             crew,
		TicketsAvailable: f.TicketsAvailable,
	}
}

type SeatView struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type FlightDetailView struct {
	ID               int64              `json:"id"`
	Route            int64              `json:"route"`
	Source           string             `json:"source"`
	Destination      string             `json:"destination"`
	Airplane         AirplaneDetailView `json:"airplane"`
	DepartureTime    time.Time          `json:"departure_time"`
	ArrivalTime      time.Time          `json:"arrival_time"`
	Crew             []CrewView         `json:"crew"`
	TakenSeats       []SeatView         `json:"taken_seats"`
	TicketsAvailable int                `json:"tickets_available"`
}

func FlightDetail(f domain.Flight) FlightDetailView {
	crew := make([]CrewView, 0, len(f.Crew))
	for _, c := range f.Crew {
		crew = append(crew, CrewMember(c))
	}
	taken := make([]SeatView, 0, len(f.TakenSeats))
	for _, s := range f.TakenSeats {
		taken = append(taken, SeatView{Row: s.Row, Seat: s.Seat})
	}
	var airplane AirplaneDetailView
	if f.Airplane != nil {
		airplane = AirplaneDetail(*f.Airplane)
	}
	return FlightDetailView{
		ID:               f.ID,
		Route:            f.RouteID,
		Source:           f.SourceCity,
		Destination:      f.DestinationCity,
		Airplane:         airplane,
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
		Crew:             crew,
		TakenSeats:       taken,
		TicketsAvailable: f.TicketsAvailable,
	}
}

type TicketCreateView struct {
	ID     int64 `json:"id"`
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
	Flight int64 `json:"flight"`
}

type TicketListView struct {
	ID     int64          `json:"id"`
	Row    int            `json:"row"`
	Seat   int            `json:"seat"`
	Flight FlightListView `json:"flight"`
}

type OrderCreateView struct {
	ID        int64              `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Tickets   []TicketCreateView `json:"tickets"`
}

func OrderCreate(o domain.Order) OrderCreateView {
	tickets := make([]TicketCreateView, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		tickets = append(tickets, TicketCreateView{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: t.FlightID})
	}
	return OrderCreateView{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: tickets}
}

type OrderListView struct {
	ID        int64            `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []TicketListView `json:"tickets"`
}

func OrderList(o domain.Order) OrderListView {
	tickets := make([]TicketListView, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		var flight FlightListView
		if t.Flight != nil {
			flight = FlightList(*t.Flight)
		}
		tickets = append(tickets, TicketListView{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: flight})
	}
	return OrderListView{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: tickets}
}

// imageURL maps a stored media-relative path to the public media route.
func imageURL(path *string) *string {
	if path == nil {
		return nil
	}
	url := "/media/" + *path
	return &url
}
