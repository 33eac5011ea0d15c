package flights

import (
	"context"
	"time"

	"github.com/loplicat/airport-api-service/internal/cache"
	"github.com/loplicat/airport-api-service/internal/domain"
	"github.com/loplicat/airport-api-service/internal/logging"
	"github.com/loplicat/airport-api-service/internal/repository"
)

type FlightUseCase interface {
	CreateRoute(ctx context.Context, input CreateRouteInput) (*domain.Route, error)
	ListRoutes(ctx context.Context, filter repository.RouteFilter, page repository.Page) ([]domain.Route, int64, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)

	CreateFlight(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	ListFlights(ctx context.Context, filter repository.FlightFilter, page repository.Page) ([]domain.Flight, int64, error)
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
}

// Cache is the listing cache used for flight pages. Cached pages hold the
// static listing fields only; seat availability is re-resolved from the
// database on every hit so it never lags behind sold tickets.
type Cache interface {
	GetFlightPage(ctx context.Context, key string) (*cache.FlightPage, error)
	SetFlightPage(ctx context.Context, key string, page *cache.FlightPage) error
}

type CreateRouteInput struct {
	SourceID      int64
	DestinationID int64
	Distance      int
}

type CreateFlightInput struct {
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	ArrivalTime   time.Time
	CrewIDs       []int64
}

type FlightService struct {
	routes  repository.RouteRepository
	flights repository.FlightRepository
	cache   Cache
}

func NewFlightService(routes repository.RouteRepository, flights repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{routes: routes, flights: flights, cache: cache}
}

func (s *FlightService) CreateRoute(ctx context.Context, input CreateRouteInput) (*domain.Route, error) {
	if input.SourceID == input.DestinationID {
		return nil, &domain.ValidationError{Field: "destination", Message: "destination must differ from source"}
	}
	if input.Distance <= 0 {
		return nil, &domain.ValidationError{Field: "distance", Message: "distance must be positive"}
	}

	route := &domain.Route{
		SourceID:      input.SourceID,
		DestinationID: input.DestinationID,
		Distance:      input.Distance,
	}
	if err := s.routes.Create(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

func (s *FlightService) ListRoutes(ctx context.Context, filter repository.RouteFilter, page repository.Page) ([]domain.Route, int64, error) {
	return s.routes.List(ctx, filter, page)
}

func (s *FlightService) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	return s.routes.GetByID(ctx, id)
}

func (s *FlightService) CreateFlight(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if !input.ArrivalTime.After(input.DepartureTime) {
		return nil, &domain.ValidationError{Field: "arrival_time", Message: "arrival time must be after departure time"}
	}

	flight := &domain.Flight{
		RouteID:       input.RouteID,
		AirplaneID:    input.AirplaneID,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
	}
	if err := s.flights.Create(ctx, flight, input.CrewIDs); err != nil {
		return nil, err
	}

	// The create view echoes crew references back by id.
	flight.Crew = make([]domain.Crew, 0, len(input.CrewIDs))
	for _, id := range input.CrewIDs {
		flight.Crew = append(flight.Crew, domain.Crew{ID: id})
	}
	return flight, nil
}

func (s *FlightService) ListFlights(ctx context.Context, filter repository.FlightFilter, page repository.Page) ([]domain.Flight, int64, error) {
	key := cache.FlightPageKey(filter.Source, filter.Destination, page.Limit, page.Offset)
	if s.cache != nil {
		if cached, err := s.cache.GetFlightPage(ctx, key); err == nil && cached != nil {
			if err := s.refreshAvailability(ctx, cached.Flights); err == nil {
				flagNegativeAvailability(cached.Flights)
				return cached.Flights, cached.Total, nil
			}
		}
	}

	flights, total, err := s.flights.List(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}
	flagNegativeAvailability(flights)
	if s.cache != nil {
		_ = s.cache.SetFlightPage(ctx, key, &cache.FlightPage{Flights: flights, Total: total})
	}
	return flights, total, nil
}

// refreshAvailability overwrites the seat counts of a cached page with the
// current ledger state.
func (s *FlightService) refreshAvailability(ctx context.Context, flights []domain.Flight) error {
	ids := make([]int64, 0, len(flights))
	for _, f := range flights {
		ids = append(ids, f.ID)
	}
	available, err := s.flights.Availability(ctx, ids)
	if err != nil {
		return err
	}
	for i := range flights {
		flights[i].TicketsAvailable = available[flights[i].ID]
	}
	return nil
}

func (s *FlightService) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	flight, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	flagNegativeAvailability([]domain.Flight{*flight})
	return flight, nil
}

// flagNegativeAvailability reports seat counts below zero. The unique seat
// index makes overselling impossible, so a negative count means the
// airplane shrank under sold tickets; the raw value is preserved.
func flagNegativeAvailability(flights []domain.Flight) {
	for i := range flights {
		if flights[i].TicketsAvailable < 0 {
			logging.Error("negative seat availability",
				"flight_id", flights[i].ID,
				"tickets_available", flights[i].TicketsAvailable)
		}
	}
}

var _ FlightUseCase = (*FlightService)(nil)
