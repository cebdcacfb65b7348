package main

import (
	"context"
	"os"
	"os/signal"
	"rentro/config"
	"rentro/infras/kafka"
	"rentro/infras/otel"
	"rentro/internal/events"
	"rentro/shared/logger"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer := otel.New(cfg)
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to flush spans")
		}
	}()

	client := kafka.New(cfg)
	defer func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close kafka client")
		}
	}()

	log.Info().Str("topic", cfg.Kafka.Topic).Str("group", cfg.Kafka.ConsumerGroup).Msg("Consuming booking request events")

	client.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic, events.NewAudit(tracer).Handle)

	log.Info().Msg("Event consumer stopped")
}
