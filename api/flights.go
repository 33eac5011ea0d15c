package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/loplicat/airport-api-service/internal/projection"
	"github.com/loplicat/airport-api-service/internal/repository"
	"github.com/loplicat/airport-api-service/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
	pager   Paginator
}

func NewFlightHandler(service flights.FlightUseCase, pager Paginator) *FlightHandler {
	return &FlightHandler{service: service, pager: pager}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights", h.list)
	router.POST("/flights", h.create)
	router.GET("/flights/:id", h.get)
}

type createFlightRequest struct {
	Route         int64     `json:"route"`
	Airplane      int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Crew          []int64   `json:"crew"`
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	flight, err := h.service.CreateFlight(c.Request.Context(), flights.CreateFlightInput{
		RouteID:       req.Route,
		AirplaneID:    req.Airplane,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		CrewIDs:       req.Crew,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projection.FlightCreate(*flight))
}

func (h *FlightHandler) list(c *gin.Context) {
	filter := repository.FlightFilter{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
	}

	page, pageNum := h.pager.Parse(c)
	result, total, err := h.service.ListFlights(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]projection.FlightListView, 0, len(result))
	for _, f := range result {
		results = append(results, projection.FlightList(f))
	}
	c.JSON(http.StatusOK, paged(total, pageNum, page.Limit, results))
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid id")
		return
	}

	flight, err := h.service.GetFlight(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projection.FlightDetail(*flight))
}
