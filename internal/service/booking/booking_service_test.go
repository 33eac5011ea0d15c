package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/loplicat/airport-api-service/internal/domain"
	"github.com/loplicat/airport-api-service/internal/kafka"
	"github.com/loplicat/airport-api-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, userID int64, reqs []domain.TicketRequest) (*domain.Order, error) {
	args := m.Called(ctx, userID, reqs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID int64, page repository.Page) ([]domain.Order, int64, error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockProducer := &MockProducer{}

	service := NewOrderService(mockOrderRepo, mockProducer, "order_events")

	ctx := context.Background()
	user := domain.User{ID: 7, Email: "rider@example.com"}
	reqs := []domain.TicketRequest{
		{FlightID: 4, Row: 2, Seat: 3},
		{FlightID: 4, Row: 2, Seat: 4},
	}

	created := &domain.Order{
		ID:        11,
		UserID:    7,
		CreatedAt: time.Now(),
		Tickets: []domain.Ticket{
			{ID: 1, FlightID: 4, Row: 2, Seat: 3, OrderID: 11},
			{ID: 2, FlightID: 4, Row: 2, Seat: 4, OrderID: 11},
		},
	}

	mockOrderRepo.On("CreateOrder", ctx, int64(7), reqs).Return(created, nil).Once()
	mockProducer.On("Publish", ctx, "order_events", "11", mock.AnythingOfType("kafka.OrderEvent")).Return(nil).Once()

	order, err := service.CreateOrder(ctx, user, reqs)

	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, int64(11), order.ID)
	assert.Len(t, order.Tickets, 2)

	mockOrderRepo.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestOrderService_CreateOrder_EmptyTicketList(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockProducer := &MockProducer{}

	service := NewOrderService(mockOrderRepo, mockProducer, "order_events")

	ctx := context.Background()
	user := domain.User{ID: 7, Email: "rider@example.com"}

	order, err := service.CreateOrder(ctx, user, nil)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrEmptyTicketList)

	mockOrderRepo.AssertNotCalled(t, "CreateOrder")
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestOrderService_CreateOrder_SeatTaken(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockProducer := &MockProducer{}

	service := NewOrderService(mockOrderRepo, mockProducer, "order_events")

	ctx := context.Background()
	user := domain.User{ID: 7, Email: "rider@example.com"}
	reqs := []domain.TicketRequest{{FlightID: 4, Row: 2, Seat: 3}}

	conflict := &domain.SeatTakenError{FlightID: 4, Row: 2, Seat: 3}
	mockOrderRepo.On("CreateOrder", ctx, int64(7), reqs).Return(nil, conflict).Once()

	order, err := service.CreateOrder(ctx, user, reqs)

	assert.Nil(t, order)
	var taken *domain.SeatTakenError
	assert.ErrorAs(t, err, &taken)
	assert.Equal(t, int64(4), taken.FlightID)

	mockOrderRepo.AssertExpectations(t)
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestOrderService_CreateOrder_FlightNotFound(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockProducer := &MockProducer{}

	service := NewOrderService(mockOrderRepo, mockProducer, "order_events")

	ctx := context.Background()
	user := domain.User{ID: 7, Email: "rider@example.com"}
	reqs := []domain.TicketRequest{{FlightID: 999, Row: 1, Seat: 1}}

	notFound := &domain.NotFoundError{Entity: "flight", ID: 999}
	mockOrderRepo.On("CreateOrder", ctx, int64(7), reqs).Return(nil, notFound).Once()

	order, err := service.CreateOrder(ctx, user, reqs)

	assert.Nil(t, order)
	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Equal(t, "flight", nf.Entity)

	mockOrderRepo.AssertExpectations(t)
	mockProducer.AssertNotCalled(t, "Publish")
}

// A lost event must not fail an order that already committed.
func TestOrderService_CreateOrder_PublishFailureTolerated(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockProducer := &MockProducer{}

	service := NewOrderService(mockOrderRepo, mockProducer, "order_events")

	ctx := context.Background()
	user := domain.User{ID: 7, Email: "rider@example.com"}
	reqs := []domain.TicketRequest{{FlightID: 4, Row: 2, Seat: 3}}

	created := &domain.Order{
		ID:      11,
		UserID:  7,
		Tickets: []domain.Ticket{{ID: 1, FlightID: 4, Row: 2, Seat: 3, OrderID: 11}},
	}

	mockOrderRepo.On("CreateOrder", ctx, int64(7), reqs).Return(created, nil).Once()
	mockProducer.On("Publish", ctx, "order_events", "11", mock.Anything).
		Return(errors.New("kafka unavailable")).Once()

	order, err := service.CreateOrder(ctx, user, reqs)

	assert.NoError(t, err)
	assert.NotNil(t, order)

	mockOrderRepo.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestOrderService_CreateOrder_EventDeduplicatesFlights(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockProducer := &MockProducer{}

	service := NewOrderService(mockOrderRepo, mockProducer, "order_events")

	ctx := context.Background()
	user := domain.User{ID: 7, Email: "rider@example.com"}
	reqs := []domain.TicketRequest{
		{FlightID: 4, Row: 1, Seat: 1},
		{FlightID: 4, Row: 1, Seat: 2},
		{FlightID: 5, Row: 3, Seat: 3},
	}

	created := &domain.Order{
		ID:     12,
		UserID: 7,
		Tickets: []domain.Ticket{
			{FlightID: 4, Row: 1, Seat: 1, OrderID: 12},
			{FlightID: 4, Row: 1, Seat: 2, OrderID: 12},
			{FlightID: 5, Row: 3, Seat: 3, OrderID: 12},
		},
	}

	mockOrderRepo.On("CreateOrder", ctx, int64(7), reqs).Return(created, nil).Once()
	mockProducer.On("Publish", ctx, "order_events", "12", mock.MatchedBy(func(v interface{}) bool {
		event, ok := v.(kafka.OrderEvent)
		if !ok {
			return false
		}
		return event.Type == "order_created" &&
			event.TicketCount == 3 &&
			len(event.FlightIDs) == 2 &&
			event.UserEmail == "rider@example.com"
	})).Return(nil).Once()

	order, err := service.CreateOrder(ctx, user, reqs)

	assert.NoError(t, err)
	assert.NotNil(t, order)

	mockProducer.AssertExpectations(t)
}

// With no producer wired, order creation still works.
func TestOrderService_CreateOrder_NoProducer(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}

	service := NewOrderService(mockOrderRepo, nil, "")

	ctx := context.Background()
	user := domain.User{ID: 7, Email: "rider@example.com"}
	reqs := []domain.TicketRequest{{FlightID: 4, Row: 2, Seat: 3}}

	created := &domain.Order{ID: 13, UserID: 7, Tickets: []domain.Ticket{{FlightID: 4, Row: 2, Seat: 3}}}
	mockOrderRepo.On("CreateOrder", ctx, int64(7), reqs).Return(created, nil).Once()

	order, err := service.CreateOrder(ctx, user, reqs)

	assert.NoError(t, err)
	assert.NotNil(t, order)

	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_ListOrders(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockProducer := &MockProducer{}

	service := NewOrderService(mockOrderRepo, mockProducer, "order_events")

	ctx := context.Background()
	page := repository.Page{Limit: 10, Offset: 0}

	orders := []domain.Order{
		{ID: 2, UserID: 7, CreatedAt: time.Now()},
		{ID: 1, UserID: 7, CreatedAt: time.Now().Add(-time.Hour)},
	}
	mockOrderRepo.On("ListByUser", ctx, int64(7), page).Return(orders, int64(2), nil).Once()

	result, total, err := service.ListOrders(ctx, 7, page)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, orders, result)

	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_ListOrders_Error(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}

	service := NewOrderService(mockOrderRepo, nil, "")

	ctx := context.Background()
	page := repository.Page{Limit: 10}

	expectedErr := errors.New("database error")
	mockOrderRepo.On("ListByUser", ctx, int64(7), page).Return([]domain.Order{}, int64(0), expectedErr).Once()

	result, total, err := service.ListOrders(ctx, 7, page)

	assert.Error(t, err)
	assert.Equal(t, expectedErr, err)
	assert.Empty(t, result)
	assert.Zero(t, total)

	mockOrderRepo.AssertExpectations(t)
}
