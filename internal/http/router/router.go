package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agriteranga-courier/internal/http/handlers"
	mw "agriteranga-courier/internal/http/middleware"
	"agriteranga-courier/internal/http/middleware/ratelimit"
	"agriteranga-courier/internal/logx"
)

// New constructs the dashboard facade router with base middleware and routes.
func New(logger logx.Logger, base *handlers.Handlers, delivery *handlers.DeliveryHandler, profile *handlers.ProfileHandler, limiter *ratelimit.Middleware) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Observability(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	if limiter != nil {
		r.Use(limiter.Handler())
	}

	r.Get("/ping", base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/dashboard", delivery.Dashboard)
	r.Post("/refresh", delivery.Refresh)

	r.Route("/deliveries", func(r chi.Router) {
		r.Get("/available", delivery.Available)
		r.Post("/available/page", delivery.AvailablePage)
		r.Get("/mine", delivery.Mine)
		r.Post("/mine/filter", delivery.FilterMine)
		r.Post("/mine/page", delivery.MinePage)
		r.Get("/history", delivery.History)
		r.Post("/history/filter", delivery.FilterHistory)
		r.Post("/history/page", delivery.HistoryPage)
		r.Get("/{id}", delivery.Details)
		r.Post("/{id}/accept", delivery.Accept)
		r.Patch("/{id}/status", delivery.UpdateStatus)
		r.Post("/{id}/complete", delivery.Complete)
	})

	r.Route("/profile", func(r chi.Router) {
		r.Get("/", profile.Get)
		r.Put("/", profile.Update)
		r.Put("/password", profile.ChangePassword)
		r.Post("/refresh", profile.Refresh)
	})

	r.NotFound(http.HandlerFunc(base.NotFound))

	return r
}
