package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/loplicat/airport-api-service/internal/domain"
)

// RouteFilter holds substring matches applied to the source and
// destination city names.
type RouteFilter struct {
	Source      string
	Destination string
}

type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) error
	List(ctx context.Context, filter RouteFilter, page Page) ([]domain.Route, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO routes (source_id, destination_id, distance) VALUES ($1, $2, $3) RETURNING id`,
		route.SourceID, route.DestinationID, route.Distance).Scan(&route.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		if strings.Contains(pgErr.ConstraintName, "destination") {
			return &domain.NotFoundError{Entity: "airport", ID: route.DestinationID}
		}
		return &domain.NotFoundError{Entity: "airport", ID: route.SourceID}
	}
	return err
}

// The trailing COUNT(*) OVER() carries the unpaginated total for listing;
// GetByID scans it into a throwaway.
const routeSelect = `
	SELECT r.id, r.source_id, r.destination_id, r.distance,
	       sa.name, da.name, sc.name, dc.name, COUNT(*) OVER()
	FROM routes r
	JOIN airports sa ON sa.id = r.source_id
	JOIN cities sc ON sc.id = sa.city_id
	JOIN airports da ON da.id = r.destination_id
	JOIN cities dc ON dc.id = da.city_id`

func (r *PGRouteRepository) List(ctx context.Context, filter RouteFilter, page Page) ([]domain.Route, int64, error) {
	rows, err := r.db.Query(ctx, routeSelect+`
		WHERE ($1 = '' OR sc.name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR dc.name ILIKE '%' || $2 || '%')
		ORDER BY r.id LIMIT $3 OFFSET $4`,
		filter.Source, filter.Destination, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	var total int64
	for rows.Next() {
		var rt domain.Route
		if err := rows.Scan(&rt.ID, &rt.SourceID, &rt.DestinationID, &rt.Distance,
			&rt.SourceName, &rt.DestinationName, &rt.SourceCity, &rt.DestinationCity, &total); err != nil {
			return nil, 0, err
		}
		routes = append(routes, rt)
	}
	return routes, total, rows.Err()
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	row := r.db.QueryRow(ctx, routeSelect+` WHERE r.id = $1`, id)
	var rt domain.Route
	var total int64
	if err := row.Scan(&rt.ID, &rt.SourceID, &rt.DestinationID, &rt.Distance,
		&rt.SourceName, &rt.DestinationName, &rt.SourceCity, &rt.DestinationCity, &total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "route", ID: id}
		}
		return nil, err
	}

	flights, err := r.flightsForRoute(ctx, id)
	if err != nil {
		return nil, err
	}
	rt.Flights = flights
	return &rt, nil
}

// flightsForRoute loads the raw flights of a route together with their
// crew references, as the route detail view embeds them.
func (r *PGRouteRepository) flightsForRoute(ctx context.Context, routeID int64) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, route_id, airplane_id, departure_time, arrival_time
		FROM flights WHERE route_id = $1 ORDER BY departure_time DESC`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attachCrew(ctx, r.db, flights)
}

var _ RouteRepository = (*PGRouteRepository)(nil)
