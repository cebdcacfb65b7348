package events_test

import (
	"context"
	"rentro/infras/kafka"
	"rentro/infras/otel/mocks"
	"rentro/internal/domains/request/model"
	"rentro/internal/domains/request/model/dto"
	"rentro/internal/events"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditHandle(t *testing.T) {
	request := model.Request{
		ID:         "req-1",
		UserRentID: "12",
		RenterID:   "34",
		PostID:     "56",
		DateTime:   time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC),
		Status:     model.StatusAccepted,
	}

	outgoing := kafka.Message{Key: request.ID, Type: "request.accepted", Value: dto.NewEvent("request.accepted", "34", request)}

	message, err := outgoing.ToKafkaMessage()
	require.NoError(t, err)

	audit := events.NewAudit(mocks.NewOtel())

	assert.NoError(t, audit.Handle(context.Background(), message))
}

func TestAuditHandle_BadPayload(t *testing.T) {
	audit := events.NewAudit(mocks.NewOtel())

	err := audit.Handle(context.Background(), kafkaGo.Message{Key: []byte("req-1"), Value: []byte("{not json")})
	assert.Error(t, err)
}
