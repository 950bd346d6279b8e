package handler

import (
	"net/http"
	"sync"

	"tourism/config"
	"tourism/di"
	"tourism/shared/logger"
)

var (
	server http.Handler
	once   sync.Once
)

// Handler is the serverless entrypoint. Warm invocations reuse the server
// built on the first request.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	server.ServeHTTP(w, r)
}
