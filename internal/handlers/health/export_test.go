package health

import (
	"context"
	"rentro/infras/otel"
)

func NewWithChecks(otel otel.Otel, pings map[string]func(ctx context.Context) error) Handler {
	handler := Handler{otel: otel}

	for name, ping := range pings {
		handler.checks = append(handler.checks, check{name: name, ping: ping})
	}

	return handler
}
