package booking

import (
	"context"
	"strconv"

	"github.com/loplicat/airport-api-service/internal/domain"
	"github.com/loplicat/airport-api-service/internal/kafka"
	"github.com/loplicat/airport-api-service/internal/logging"
	"github.com/loplicat/airport-api-service/internal/repository"
)

type OrderUseCase interface {
	CreateOrder(ctx context.Context, user domain.User, tickets []domain.TicketRequest) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64, page repository.Page) ([]domain.Order, int64, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type OrderService struct {
	orders      repository.OrderRepository
	producer    Producer
	ordersTopic string
}

func NewOrderService(orders repository.OrderRepository, producer Producer, ordersTopic string) *OrderService {
	return &OrderService{orders: orders, producer: producer, ordersTopic: ordersTopic}
}

// CreateOrder persists the order with all requested tickets atomically.
// The repository runs seat-grid validation and the (flight, row, seat)
// uniqueness check inside one transaction, so a failure on any ticket
// leaves nothing behind.
func (s *OrderService) CreateOrder(ctx context.Context, user domain.User, tickets []domain.TicketRequest) (*domain.Order, error) {
	if len(tickets) == 0 {
		return nil, domain.ErrEmptyTicketList
	}

	order, err := s.orders.CreateOrder(ctx, user.ID, tickets)
	if err != nil {
		return nil, err
	}

	if err := s.publishCreated(ctx, user, order); err != nil {
		// The order is committed; a lost notification must not fail it.
		logging.Warn("failed to publish order event", "order_id", order.ID, "error", err.Error())
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID int64, page repository.Page) ([]domain.Order, int64, error) {
	return s.orders.ListByUser(ctx, userID, page)
}

func (s *OrderService) publishCreated(ctx context.Context, user domain.User, order *domain.Order) error {
	if s.producer == nil || s.ordersTopic == "" {
		return nil
	}

	flightIDs := make([]int64, 0, len(order.Tickets))
	seen := make(map[int64]bool)
	for _, t := range order.Tickets {
		if !seen[t.FlightID] {
			seen[t.FlightID] = true
			flightIDs = append(flightIDs, t.FlightID)
		}
	}

	event := kafka.OrderEvent{
		Type:        "order_created",
		OrderID:     order.ID,
		UserEmail:   user.Email,
		TicketCount: len(order.Tickets),
		FlightIDs:   flightIDs,
		CreatedAt:   order.CreatedAt,
	}
	return s.producer.Publish(ctx, s.ordersTopic, strconv.FormatInt(order.ID, 10), event)
}

var _ OrderUseCase = (*OrderService)(nil)
