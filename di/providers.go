package di

import (
	"context"
	"rentro/config"
	"rentro/infras/kafka"
	"rentro/infras/otel"
	"rentro/infras/postgres"
	"rentro/infras/redis"
	"rentro/infras/requestapi"
	bookingService "rentro/internal/domains/booking/service"
	bookingStore "rentro/internal/domains/booking/store"
	requestService "rentro/internal/domains/request/service"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const otelFlushTimeout = 5 * time.Second

func providePostgres(cfg *config.Config) (*postgres.Connection, func(), error) {
	db, err := postgres.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	return db, func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close postgres connections")
		}
	}, nil
}

func provideRedis(cfg *config.Config) (*goRedis.Client, func(), error) {
	client, err := redis.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	return client, func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close redis client")
		}
	}, nil
}

func provideOtel(cfg *config.Config) (otel.Otel, func()) {
	tracer := otel.New(cfg)

	return tracer, func() {
		ctx, cancel := context.WithTimeout(context.Background(), otelFlushTimeout)
		defer cancel()

		if err := tracer.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to flush spans")
		}
	}
}

func provideKafka(cfg *config.Config) (kafka.Client, func()) {
	client := kafka.New(cfg)

	return client, func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close kafka writers")
		}
	}
}

// provideBookingStore picks the remote request API when a base URL is configured and the
// in-process request service otherwise.
func provideBookingStore(cfg *config.Config, requests requestService.Request) (bookingService.Store, error) {
	if cfg.External.RequestAPI.BaseURL == "" {
		return bookingStore.NewLocal(requests), nil
	}

	log.Info().Str("base_url", cfg.External.RequestAPI.BaseURL).Msg("Booking flow uses the remote request API")

	return requestapi.New(cfg)
}
