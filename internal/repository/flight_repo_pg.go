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

// FlightFilter holds substring matches applied to the source and
// destination city names.
type FlightFilter struct {
	Source      string
	Destination string
}

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) error
	List(ctx context.Context, filter FlightFilter, page Page) ([]domain.Flight, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Availability(ctx context.Context, flightIDs []int64) (map[int64]int, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime).Scan(&flight.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			if strings.Contains(pgErr.ConstraintName, "airplane") {
				return &domain.NotFoundError{Entity: "airplane", ID: flight.AirplaneID}
			}
			return &domain.NotFoundError{Entity: "route", ID: flight.RouteID}
		}
		return err
	}

	for _, crewID := range crewIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO flight_crew (flight_id, crew_id) VALUES ($1, $2)`, flight.ID, crewID); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return &domain.NotFoundError{Entity: "crew", ID: crewID}
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

// The trailing COUNT(*) OVER() carries the unpaginated total for listing;
// GetByID scans it into a throwaway.
const flightSelect = `
	SELECT f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time,
	       sc.name, dc.name, a.name,
	       a.rows * a.seats_in_row - (SELECT COUNT(*) FROM tickets t WHERE t.flight_id = f.id) AS tickets_available,
	       COUNT(*) OVER()
	FROM flights f
	JOIN routes r ON r.id = f.route_id
	JOIN airports sa ON sa.id = r.source_id
	JOIN cities sc ON sc.id = sa.city_id
	JOIN airports da ON da.id = r.destination_id
	JOIN cities dc ON dc.id = da.city_id
	JOIN airplanes a ON a.id = f.airplane_id`

func (r *PGFlightRepository) List(ctx context.Context, filter FlightFilter, page Page) ([]domain.Flight, int64, error) {
	rows, err := r.db.Query(ctx, flightSelect+`
		WHERE ($1 = '' OR sc.name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR dc.name ILIKE '%' || $2 || '%')
		ORDER BY f.departure_time DESC LIMIT $3 OFFSET $4`,
		filter.Source, filter.Destination, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	var total int64
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime,
			&f.SourceCity, &f.DestinationCity, &f.AirplaneName, &f.TicketsAvailable, &total); err != nil {
			return nil, 0, err
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	flights, err = attachCrew(ctx, r.db, flights)
	if err != nil {
		return nil, 0, err
	}
	return flights, total, nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, flightSelect+` WHERE f.id = $1`, id)
	var f domain.Flight
	var total int64
	if err := row.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime,
		&f.SourceCity, &f.DestinationCity, &f.AirplaneName, &f.TicketsAvailable, &total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "flight", ID: id}
		}
		return nil, err
	}

	airplane := domain.Airplane{}
	err := r.db.QueryRow(ctx, `
		SELECT a.id, a.name, a.rows, a.seats_in_row, a.airplane_type_id, t.name, a.image_path
		FROM airplanes a
		LEFT JOIN airplane_types t ON t.id = a.airplane_type_id
		WHERE a.id = $1`, f.AirplaneID).
		Scan(&airplane.ID, &airplane.Name, &airplane.Rows, &airplane.SeatsInRow,
			&airplane.AirplaneTypeID, &airplane.AirplaneTypeName, &airplane.ImagePath)
	if err != nil {
		return nil, err
	}
	f.Airplane = &airplane

	seatRows, err := r.db.Query(ctx, `SELECT "row", seat FROM tickets WHERE flight_id = $1 ORDER BY "row", seat`, id)
	if err != nil {
		return nil, err
	}
	defer seatRows.Close()
	f.TakenSeats = make([]domain.SeatRef, 0)
	for seatRows.Next() {
		var s domain.SeatRef
		if err := seatRows.Scan(&s.Row, &s.Seat); err != nil {
			return nil, err
		}
		f.TakenSeats = append(f.TakenSeats, s)
	}
	if err := seatRows.Err(); err != nil {
		return nil, err
	}

	flights, err := attachCrew(ctx, r.db, []domain.Flight{f})
	if err != nil {
		return nil, err
	}
	return &flights[0], nil
}

// Availability recomputes the free seat count for the given flights
// straight from the tickets table.
func (r *PGFlightRepository) Availability(ctx context.Context, flightIDs []int64) (map[int64]int, error) {
	if len(flightIDs) == 0 {
		return map[int64]int{}, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT f.id,
		       a.rows * a.seats_in_row - (SELECT COUNT(*) FROM tickets t WHERE t.flight_id = f.id)
		FROM flights f
		JOIN airplanes a ON a.id = f.airplane_id
		WHERE f.id = ANY($1::bigint[])`, flightIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	available := make(map[int64]int, len(flightIDs))
	for rows.Next() {
		var id int64
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		available[id] = count
	}
	return available, rows.Err()
}

// attachCrew loads the crew rosters for the given flights in one query and
// fills them in, preserving flight order.
func attachCrew(ctx context.Context, db *pgxpool.Pool, flights []domain.Flight) ([]domain.Flight, error) {
	if len(flights) == 0 {
		return flights, nil
	}

	ids := make([]int64, 0, len(flights))
	for _, f := range flights {
		ids = append(ids, f.ID)
	}

	rows, err := db.Query(ctx, `
		SELECT fc.flight_id, c.id, c.first_name, c.last_name
		FROM flight_crew fc
		JOIN crew c ON c.id = fc.crew_id
		WHERE fc.flight_id = ANY($1::bigint[])
		ORDER BY c.id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byFlight := make(map[int64][]domain.Crew)
	for rows.Next() {
		var flightID int64
		var c domain.Crew
		if err := rows.Scan(&flightID, &c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		byFlight[flightID] = append(byFlight[flightID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range flights {
		crew := byFlight[flights[i].ID]
		if crew == nil {
			crew = make([]domain.Crew, 0)
		}
		flights[i].Crew = crew
	}
	return flights, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
