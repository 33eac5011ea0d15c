package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/loplicat/airport-api-service/api"
	"github.com/loplicat/airport-api-service/config"
	"github.com/loplicat/airport-api-service/internal/service/auth"
	"github.com/loplicat/airport-api-service/internal/service/booking"
	"github.com/loplicat/airport-api-service/internal/service/catalog"
	"github.com/loplicat/airport-api-service/internal/service/flights"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(
	ctx context.Context,
	cfg *config.Config,
	catalogSvc catalog.CatalogUseCase,
	flightSvc flights.FlightUseCase,
	orderSvc booking.OrderUseCase,
	authSvc auth.AuthUseCase,
) error {
	router := NewRouter(cfg, catalogSvc, flightSvc, orderSvc, authSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter assembles the gin engine with all application routes.
func NewRouter(
	cfg *config.Config,
	catalogSvc catalog.CatalogUseCase,
	flightSvc flights.FlightUseCase,
	orderSvc booking.OrderUseCase,
	authSvc auth.AuthUseCase,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	pager := api.Paginator{
		PageSize:    cfg.Pagination.PageSize,
		MaxPageSize: cfg.Pagination.MaxPageSize,
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Storage.MediaDir != "" {
		router.Static("/media", cfg.Storage.MediaDir)
	}
	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	v1 := router.Group("/api/v1")

	authHandler := api.NewAuthHandler(authSvc)
	authHandler.Register(v1.Group("/auth"))

	authenticate := api.Authenticate(authSvc)

	catalogHandler := api.NewCatalogHandler(catalogSvc, pager)
	catalogHandler.Register(v1, authenticate, api.RequireStaff())

	routeHandler := api.NewRouteHandler(flightSvc, pager)
	routeHandler.Register(v1)

	flightHandler := api.NewFlightHandler(flightSvc, pager)
	flightHandler.Register(v1)

	orders := v1.Group("")
	orders.Use(authenticate)
	orderHandler := api.NewOrderHandler(orderSvc, pager)
	orderHandler.Register(orders)

	return router
}
