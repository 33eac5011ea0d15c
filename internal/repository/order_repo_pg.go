package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/loplicat/airport-api-service/internal/domain"
)

type OrderRepository interface {
	// CreateOrder persists an order and all of its tickets in one
	// transaction. Any validation failure or uniqueness violation rolls the
	// whole order back.
	CreateOrder(ctx context.Context, userID int64, reqs []domain.TicketRequest) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, page Page) ([]domain.Order, int64, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

func (r *PGOrderRepository) CreateOrder(ctx context.Context, userID int64, reqs []domain.TicketRequest) (*domain.Order, error) {
	if len(reqs) == 0 {
		return nil, domain.ErrEmptyTicketList
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	order := &domain.Order{UserID: userID}
	if err := tx.QueryRow(ctx, `INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at`, userID).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return nil, err
	}

	// Seat-grid validation runs inside the same transaction as the
	// inserts, so a ticket can never be persisted unvalidated.
	airplanes := make(map[int64]domain.Airplane)
	for i, req := range reqs {
		airplane, ok := airplanes[req.FlightID]
		if !ok {
			row := tx.QueryRow(ctx, `
				SELECT a.id, a.name, a.rows, a.seats_in_row
				FROM flights f
				JOIN airplanes a ON a.id = f.airplane_id
				WHERE f.id = $1`, req.FlightID)
			if err := row.Scan(&airplane.ID, &airplane.Name, &airplane.Rows, &airplane.SeatsInRow); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, &domain.NotFoundError{Entity: "flight", ID: req.FlightID}
				}
				return nil, err
			}
			airplanes[req.FlightID] = airplane
		}

		if err := domain.ValidateTicket(req.Row, req.Seat, airplane); err != nil {
			var oor *domain.SeatOutOfRangeError
			if errors.As(err, &oor) {
				oor.TicketIndex = i
			}
			return nil, err
		}

		ticket := domain.Ticket{Row: req.Row, Seat: req.Seat, FlightID: req.FlightID, OrderID: order.ID}
		err := tx.QueryRow(ctx,
			`INSERT INTO tickets ("row", seat, flight_id, order_id) VALUES ($1, $2, $3, $4) RETURNING id`,
			req.Row, req.Seat, req.FlightID, order.ID).Scan(&ticket.ID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case "23505":
					return nil, &domain.SeatTakenError{FlightID: req.FlightID, Row: req.Row, Seat: req.Seat}
				case "23503":
					return nil, &domain.NotFoundError{Entity: "flight", ID: req.FlightID}
				}
			}
			return nil, err
		}
		order.Tickets = append(order.Tickets, ticket)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64, page Page) ([]domain.Order, int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, created_at, COUNT(*) OVER()
		FROM orders WHERE user_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		userID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	var total int64
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt, &total); err != nil {
			return nil, 0, err
		}
		o.Tickets = make([]domain.Ticket, 0)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(orders) == 0 {
		return orders, total, nil
	}

	if err := r.attachTickets(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// attachTickets loads, for every order on the page, its tickets together
// with the list-shaped flight each ticket points at. Tickets come back in
// the ledger's natural order, row then seat.
func (r *PGOrderRepository) attachTickets(ctx context.Context, orders []domain.Order) error {
	ids := make([]int64, 0, len(orders))
	index := make(map[int64]*domain.Order, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].ID)
		index[orders[i].ID] = &orders[i]
	}

	rows, err := r.db.Query(ctx, `
		SELECT t.id, t."row", t.seat, t.flight_id, t.order_id,
		       f.route_id, f.airplane_id, f.departure_time, f.arrival_time,
		       sc.name, dc.name, a.name,
		       a.rows * a.seats_in_row - (SELECT COUNT(*) FROM tickets tc WHERE tc.flight_id = f.id)
		FROM tickets t
		JOIN flights f ON f.id = t.flight_id
		JOIN routes ro ON ro.id = f.route_id
		JOIN airports sa ON sa.id = ro.source_id
		JOIN cities sc ON sc.id = sa.city_id
		JOIN airports da ON da.id = ro.destination_id
		JOIN cities dc ON dc.id = da.city_id
		JOIN airplanes a ON a.id = f.airplane_id
		WHERE t.order_id = ANY($1::bigint[])
		ORDER BY t.order_id, t."row", t.seat`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		var t domain.Ticket
		var f domain.Flight
		if err := rows.Scan(&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID,
			&f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime,
			&f.SourceCity, &f.DestinationCity, &f.AirplaneName, &f.TicketsAvailable); err != nil {
			return err
		}
		f.ID = t.FlightID
		flights = append(flights, f)
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	flights, err = attachCrew(ctx, r.db, flights)
	if err != nil {
		return err
	}
	for i := range tickets {
		tickets[i].Flight = &flights[i]
		if o, ok := index[tickets[i].OrderID]; ok {
			o.Tickets = append(o.Tickets, tickets[i])
		}
	}
	return nil
}

var _ OrderRepository = (*PGOrderRepository)(nil)
