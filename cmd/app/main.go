package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/loplicat/airport-api-service/config"
	"github.com/loplicat/airport-api-service/internal/bootstrap"
	"github.com/loplicat/airport-api-service/internal/cache"
	"github.com/loplicat/airport-api-service/internal/kafka"
	"github.com/loplicat/airport-api-service/internal/logging"
	"github.com/loplicat/airport-api-service/internal/repository"
	"github.com/loplicat/airport-api-service/internal/service/auth"
	"github.com/loplicat/airport-api-service/internal/service/booking"
	"github.com/loplicat/airport-api-service/internal/service/catalog"
	"github.com/loplicat/airport-api-service/internal/service/flights"
	"github.com/loplicat/airport-api-service/internal/storage"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logging.Init(os.Getenv("APP_ENV")); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logging.Error("connect postgres", "error", err.Error())
		os.Exit(1)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	imageStore := storage.NewLocalImageStore(cfg.Storage.MediaDir)

	catalogRepo := repository.NewCatalogRepository(pool)
	routeRepo := repository.NewRouteRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	catalogSvc := catalog.NewCatalogService(catalogRepo, imageStore)
	flightSvc := flights.NewFlightService(routeRepo, flightRepo, redisCache)
	orderSvc := booking.NewOrderService(orderRepo, producer, cfg.Kafka.OrdersTopic)
	authSvc := auth.NewAuthService(userRepo, cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTTLMinutes)*time.Minute, cfg.Auth.BcryptCost)

	logging.Info("starting http server", "address", cfg.HTTP.Address)
	if err := bootstrap.Run(ctx, cfg, catalogSvc, flightSvc, orderSvc, authSvc); err != nil {
		logging.Error("server error", "error", err.Error())
		os.Exit(1)
	}
}
