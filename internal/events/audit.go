// Package events consumes booking request lifecycle events.
package events

import (
	"context"
	"fmt"
	"rentro/infras/kafka"
	"rentro/infras/metrics"
	"rentro/infras/otel"
	"rentro/internal/domains/request/model/dto"
	"rentro/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Audit writes every lifecycle event to the structured log and counts it.
type Audit struct {
	otel otel.Otel
}

func NewAudit(otel otel.Otel) *Audit {
	return &Audit{otel: otel}
}

func (a *Audit) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	_, scope := a.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".audit.Handle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	event, err := kafka.Decode[dto.Event](message)
	if err != nil {
		log.Error().Err(err).Str("key", string(message.Key)).Msg("failed to decode booking request event")

		return fmt.Errorf("failed to decode booking request event: %w", err)
	}

	eventType := kafka.EventType(message)
	if eventType == "" {
		eventType = event.Type
	}

	scope.SetAttributes(map[string]any{
		"event.type": eventType,
		"request.id": event.Request.ID.String(),
	})

	log.Info().
		Str("event", eventType).
		Str("actor", event.Actor).
		Str("id", event.Request.ID.String()).
		Str("post", event.Request.PostID.String()).
		Str("status", string(event.Request.Status)).
		Str("occurred_at", event.OccurredAt).
		Msg("booking request event")

	metrics.IncEvent(eventType)

	return nil
}
