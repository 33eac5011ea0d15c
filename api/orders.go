package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/loplicat/airport-api-service/internal/domain"
	"github.com/loplicat/airport-api-service/internal/projection"
	"github.com/loplicat/airport-api-service/internal/service/booking"
)

type OrderHandler struct {
	service booking.OrderUseCase
	pager   Paginator
}

func NewOrderHandler(service booking.OrderUseCase, pager Paginator) *OrderHandler {
	return &OrderHandler{service: service, pager: pager}
}

// Register wires the order routes. The caller is expected to mount them
// behind the authentication middleware.
func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.GET("/orders", h.list)
	router.POST("/orders", h.create)
}

type ticketRequest struct {
	Flight int64 `json:"flight"`
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
}

type createOrderRequest struct {
	Tickets []ticketRequest `json:"tickets"`
}

func (h *OrderHandler) create(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "authentication required"}})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	tickets := make([]domain.TicketRequest, 0, len(req.Tickets))
	for _, t := range req.Tickets {
		tickets = append(tickets, domain.TicketRequest{FlightID: t.Flight, Row: t.Row, Seat: t.Seat})
	}

	user := domain.User{ID: claims.UserID, Email: claims.Email, IsStaff: claims.IsStaff}
	order, err := h.service.CreateOrder(c.Request.Context(), user, tickets)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projection.OrderCreate(*order))
}

func (h *OrderHandler) list(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "authentication required"}})
		return
	}

	page, pageNum := h.pager.Parse(c)
	orders, total, err := h.service.ListOrders(c.Request.Context(), claims.UserID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]projection.OrderListView, 0, len(orders))
	for _, o := range orders {
		results = append(results, projection.OrderList(o))
	}
	c.JSON(http.StatusOK, paged(total, pageNum, page.Limit, results))
}
