package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
	mhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
)

// NewRouter assembles the REST surface the dashboard polls. Write endpoints
// sit behind the rate limiter; reads stay unthrottled since the UI polls
// every couple of seconds.
func NewRouter(h *Handlers, rateLimiter *limiter.Limiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/orders", h.listOrders)
	r.Get("/baristas", h.listBaristas)
	r.Get("/customers/search", h.searchCustomer)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if rateLimiter != nil {
			limiterMW := mhttp.NewMiddleware(rateLimiter)
			r.Use(limiterMW.Handler)
		}
		r.Post("/orders", h.placeOrder)
		r.Post("/orders/{id}/cancel", h.cancelOrder)
		r.Post("/customers", h.createCustomer)
		r.Post("/simulation/run", h.runSimulation)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
