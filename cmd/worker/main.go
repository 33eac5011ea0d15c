package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/loplicat/airport-api-service/config"
	"github.com/loplicat/airport-api-service/internal/email"
	"github.com/loplicat/airport-api-service/internal/kafka"
	"github.com/loplicat/airport-api-service/internal/logging"
	kafkaGo "github.com/segmentio/kafka-go"
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

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.OrdersTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	logging.Info("notification worker started", "topic", cfg.Kafka.OrdersTopic, "group", cfg.Kafka.GroupID)

	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var event kafka.OrderEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logging.Warn("skipping malformed event", "error", err.Error())
			return nil
		}
		return emailSender.Send(ctx, event)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error("consumer stopped", "error", err.Error())
		os.Exit(1)
	}

	logging.Info("notification worker stopped")
}
