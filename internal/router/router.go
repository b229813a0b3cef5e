package router

import (
	"net/http"

	"prodexa/internal/handler"
	"prodexa/internal/metrics"
	"prodexa/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by the router. Auth may be nil
// when token login is disabled.
type Handlers struct {
	Product *handler.ProductHandler
	Bill    *handler.BillHandler
	Report  *handler.ReportHandler
	Auth    *handler.AuthHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	h Handlers,
	m *metrics.Metrics,
	apiKey string,
	tokens middleware.TokenParser,
	corsOrigins []string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Applied in order: Recovery -> Logging -> Metrics -> CORS -> Auth
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(corsOrigins))
	r.Use(middleware.Auth(apiKey, tokens, logger))

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	r.Handle("/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		if h.Auth != nil {
			r.Post("/login", h.Auth.Login)
		}

		r.Get("/categories", h.Product.Categories)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.List)
			r.Post("/", h.Product.Create)
			r.Post("/refresh", h.Product.Refresh)
			r.Get("/{name}", h.Product.Get)
			r.Put("/{name}", h.Product.Update)
			r.Delete("/{name}", h.Product.Delete)
		})

		r.Route("/bills", func(r chi.Router) {
			r.Post("/", h.Bill.Open)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Bill.Get)
				r.Delete("/", h.Bill.Discard)
				r.Post("/items", h.Bill.AddItem)
				r.Delete("/items", h.Bill.Clear)
				r.Put("/rates", h.Bill.SetRates)
				r.Get("/totals", h.Bill.Totals)
				r.Post("/finalize", h.Bill.Finalize)
				r.Get("/share", h.Bill.Share)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", h.Report.Summary)
			r.Get("/summary.xlsx", h.Report.SummaryExcel)
			r.Get("/summary.csv", h.Report.SummaryCSV)
			r.Get("/charts/{kind}", h.Report.Chart)
		})
	})

	return r
}
