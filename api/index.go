package handler

import (
	"net/http"
	"rentro/config"
	"rentro/di"
	"rentro/infras/metrics"
	"rentro/shared/logger"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	service http.Handler
	initErr error
)

// Handler is the serverless entrypoint. The service graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		logger.InitLogger()

		cfg := config.Get()

		logger.Configure(cfg)

		if cfg.Metrics.Enable {
			metrics.Register()
		}

		service, _, initErr = di.InitializeService()
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("Failed to initialize service")
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)

		return
	}

	service.ServeHTTP(w, r)
}
