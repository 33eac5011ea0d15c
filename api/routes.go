package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/loplicat/airport-api-service/internal/projection"
	"github.com/loplicat/airport-api-service/internal/repository"
	"github.com/loplicat/airport-api-service/internal/service/flights"
)

type RouteHandler struct {
	service flights.FlightUseCase
	pager   Paginator
}

func NewRouteHandler(service flights.FlightUseCase, pager Paginator) *RouteHandler {
	return &RouteHandler{service: service, pager: pager}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.GET("/routes", h.list)
	router.POST("/routes", h.create)
	router.GET("/routes/:id", h.get)
}

type createRouteRequest struct {
	Source      int64 `json:"source"`
	Destination int64 `json:"destination"`
	Distance    int   `json:"distance"`
}

func (h *RouteHandler) create(c *gin.Context) {
	var req createRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	route, err := h.service.CreateRoute(c.Request.Context(), flights.CreateRouteInput{
		SourceID:      req.Source,
		DestinationID: req.Destination,
		Distance:      req.Distance,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projection.RouteCreate(*route))
}

func (h *RouteHandler) list(c *gin.Context) {
	filter := repository.RouteFilter{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
	}

	page, pageNum := h.pager.Parse(c)
	routes, total, err := h.service.ListRoutes(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]projection.RouteListView, 0, len(routes))
	for _, r := range routes {
		results = append(results, projection.RouteList(r))
	}
	c.JSON(http.StatusOK, paged(total, pageNum, page.Limit, results))
}

func (h *RouteHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid id")
		return
	}

	route, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projection.RouteDetail(*route))
}
