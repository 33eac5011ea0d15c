package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/loplicat/airport-api-service/internal/projection"
	"github.com/loplicat/airport-api-service/internal/repository"
	"github.com/loplicat/airport-api-service/internal/service/catalog"
)

type CatalogHandler struct {
	service catalog.CatalogUseCase
	pager   Paginator
}

func NewCatalogHandler(service catalog.CatalogUseCase, pager Paginator) *CatalogHandler {
	return &CatalogHandler{service: service, pager: pager}
}

// Register wires the catalog routes. staffOnly guards the admin-only
// image upload endpoint.
func (h *CatalogHandler) Register(router *gin.RouterGroup, staffOnly ...gin.HandlerFunc) {
	router.GET("/countries", h.listCountries)
	router.POST("/countries", h.createCountry)

	router.GET("/cities", h.listCities)
	router.POST("/cities", h.createCity)

	router.GET("/airplane-types", h.listAirplaneTypes)
	router.POST("/airplane-types", h.createAirplaneType)

	router.GET("/airplanes", h.listAirplanes)
	router.POST("/airplanes", h.createAirplane)
	router.GET("/airplanes/:id", h.getAirplane)
	upload := append(append([]gin.HandlerFunc{}, staffOnly...), h.uploadAirplaneImage)
	router.POST("/airplanes/:id/upload-image", upload...)

	router.GET("/airports", h.listAirports)
	router.POST("/airports", h.createAirport)

	router.GET("/crews", h.listCrew)
	router.POST("/crews", h.createCrew)
}

type createCountryRequest struct {
	Name string `json:"name"`
}

func (h *CatalogHandler) createCountry(c *gin.Context) {
	var req createCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	country, err := h.service.CreateCountry(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projection.Country(*country))
}

func (h *CatalogHandler) listCountries(c *gin.Context) {
	page, pageNum := h.pager.Parse(c)
	countries, total, err := h.service.ListCountries(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]projection.CountryView, 0, len(countries))
	for _, country := range countries {
		results = append(results, projection.Country(country))
	}
	c.JSON(http.StatusOK, paged(total, pageNum, page.Limit, results))
}

type createCityRequest struct {
	Name    string `json:"name"`
	Country int64  `json:"country"`
}

func (h *CatalogHandler) createCity(c *gin.Context) {
	var req createCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	city, err := h.service.CreateCity(c.Request.Context(), req.Name, req.Country)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projection.CityCreate(*city))
}

func (h *CatalogHandler) listCities(c *gin.Context) {
	page, pageNum := h.pager.Parse(c)
	cities, total, err := h.service.ListCities(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]projection.CityListView, 0, len(cities))
	for _, city := range cities {
		results = append(results, projection.CityList(city))
	}
	c.JSON(http.StatusOK, paged(total, pageNum, page.Limit, results))
}

type createAirplaneTypeRequest struct {
	Name string `json:"name"`
}

func (h *CatalogHandler) createAirplaneType(c *gin.Context) {
	var req createAirplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	t, err := h.service.CreateAirplaneType(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projection.AirplaneType(*t))
}

func (h *CatalogHandler) listAirplaneTypes(c *gin.Context) {
	page, pageNum := h.pager.Parse(c)
	types, total, err := h.service.ListAirplaneTypes(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]projection.AirplaneTypeView, 0, len(types))
	for _, t := range types {
		results = append(results, projection.AirplaneType(t))
	}
	c.JSON(http.StatusOK, paged(total, pageNum, page.Limit, results))
}

type createAirplaneRequest struct {
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	AirplaneType *int64 `json:"airplane_type"`
}

func (h *CatalogHandler) createAirplane(c *gin.Context) {
	var req createAirplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	airplane, err := h.service.CreateAirplane(c.Request.Context(), catalog.CreateAirplaneInput{
		Name:           req.Name,
		Rows:           req.Rows,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: req.AirplaneType,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projection.AirplaneDetail(*airplane))
}

// listAirplanes recognizes the name, airplane_types and capacity_gte
// filters.
func (h *CatalogHandler) listAirplanes(c *gin.Context) {
	filter := repository.AirplaneFilter{Name: c.Query("name")}

	if raw := c.Query("airplane_types"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				badRequest(c, "airplane_types must be a comma-separated list of ids")
				return
			}
			filter.TypeIDs = append(filter.TypeIDs, id)
		}
	}
	if raw := c.Query("capacity_gte"); raw != "" {
		capacity, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "capacity_gte must be an integer")
			return
		}
		filter.CapacityGTE = &capacity
	}

	page, pageNum := h.pager.Parse(c)
	airplanes, total, err := h.service.ListAirplanes(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]projection.AirplaneListView, 0, len(airplanes))
	for _, a := range airplanes {
		results = append(results, projection.AirplaneList(a))
	}
	c.JSON(http.StatusOK, paged(total, pageNum, page.Limit, results))
}

func (h *CatalogHandler) getAirplane(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid id")
		return
	}

	airplane, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projection.AirplaneDetail(*airplane))
}

func (h *CatalogHandler) uploadAirplaneImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid id")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "image file is required")
		return
	}
	src, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()

	airplane, err := h.service.UploadAirplaneImage(c.Request.Context(), id, file.Filename, src)
	if err != nil {
		respondError(c, err)
		return
	}

	view := projection.AirplaneDetail(*airplane)
	c.JSON(http.StatusOK, gin.H{"id": view.ID, "image": view.Image})
}

type createAirportRequest struct {
	Name           string `json:"name"`
	City           int64  `json:"city"`
	ClosestBigCity string `json:"closest_big_city"`
}

func (h *CatalogHandler) createAirport(c *gin.Context) {
	var req createAirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	airport, err := h.service.CreateAirport(c.Request.Context(), catalog.CreateAirportInput{
		Name:           req.Name,
		CityID:         req.City,
		ClosestBigCity: req.ClosestBigCity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projection.AirportCreate(*airport))
}

func (h *CatalogHandler) listAirports(c *gin.Context) {
	page, pageNum := h.pager.Parse(c)
	airports, total, err := h.service.ListAirports(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]projection.AirportListView, 0, len(airports))
	for _, a := range airports {
		results = append(results, projection.AirportList(a))
	}
	c.JSON(http.StatusOK, paged(total, pageNum, page.Limit, results))
}

type createCrewRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *CatalogHandler) createCrew(c *gin.Context) {
	var req createCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	member, err := h.service.CreateCrew(c.Request.Context(), req.FirstName, req.LastName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projection.CrewMember(*member))
}

func (h *CatalogHandler) listCrew(c *gin.Context) {
	page, pageNum := h.pager.Parse(c)
	members, total, err := h.service.ListCrew(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]projection.CrewView, 0, len(members))
	for _, m := range members {
		results = append(results, projection.CrewMember(m))
	}
	c.JSON(http.StatusOK, paged(total, pageNum, page.Limit, results))
}
