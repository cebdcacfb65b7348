package health

import (
	"context"
	"net/http"
	"rentro/infras/otel"
	"rentro/infras/postgres"
	"rentro/shared/constant"
	"rentro/transport/http/response"
	"time"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const checkTimeout = 2 * time.Second

type check struct {
	name string
	ping func(ctx context.Context) error
}

type Status struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

type Handler struct {
	checks []check
	otel   otel.Otel
}

func New(db *postgres.Connection, redis *goRedis.Client, otel otel.Otel) Handler {
	return Handler{
		checks: []check{
			{name: "postgres", ping: db.Write.PingContext},
			{name: "redis", ping: func(ctx context.Context) error { return redis.Ping(ctx).Err() }},
		},
		otel: otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/health", func(routerGroup chi.Router) {
		routerGroup.Get("/live", handler.Live)
		routerGroup.Get("/ready", handler.Ready)
	})
}

// Live reports that the process is serving requests.
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} Status
// @Router /health/live [get]
func (handler *Handler) Live(writer http.ResponseWriter, _ *http.Request) {
	response.WithJSON(writer, http.StatusOK, Status{Status: "ok"})
}

// Ready pings postgres and redis.
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} Status
// @Failure 503 {object} Status
// @Router /health/ready [get]
func (handler *Handler) Ready(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".health.Ready")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	status := Status{Status: "ok", Components: make(map[string]string, len(handler.checks))}
	code := http.StatusOK

	for _, c := range handler.checks {
		if err := c.ping(ctx); err != nil {
			log.Error().Err(err).Str("component", c.name).Msg("readiness check failed")
			scope.TraceError(err)

			status.Components[c.name] = err.Error()
			status.Status = "unavailable"
			code = http.StatusServiceUnavailable

			continue
		}

		status.Components[c.name] = "ok"
	}

	response.WithJSON(writer, code, status)
}
