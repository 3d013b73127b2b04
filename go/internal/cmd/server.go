package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mcdev12/pickpool/go/internal/httpapi"
	"github.com/mcdev12/pickpool/go/internal/outbox"
	"github.com/mcdev12/pickpool/go/internal/periods"
)

func setupServer(services *Services, health *outbox.HealthChecker) *http.Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	setupHealthCheck(r, health)

	// The socket upgrade sits outside the API group so it skips period reconciliation.
	services.Gateway.Routes(r)

	r.Route("/api", func(api chi.Router) {
		api.Use(periods.Middleware(services.PeriodsApp))
		registerServices(api, services)
	})

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", getEnv("PORT", "8080")),
		Handler:           h2c.NewHandler(c.Handler(r), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func registerServices(r chi.Router, services *Services) {
	services.Seasons.Routes(r)
	services.Periods.Routes(r)
	services.Contests.Routes(r)
	services.Participants.Routes(r)
	services.Predictions.Routes(r)
	services.Roster.Routes(r)
	services.Teams.Routes(r)
	services.Standings.Routes(r)
	services.Reminders.Routes(r)
}

func setupHealthCheck(r chi.Router, health *outbox.HealthChecker) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := health.Check(r.Context())
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		httpapi.RespondJSON(w, code, status)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
