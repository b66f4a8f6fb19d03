package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/xavierca1/machinecare-leads/internal/infra/http/middleware"
)

type Router struct {
	Contact        *ContactHandler
	Leads          *LeadHandler
	Payments       *PaymentHandler
	Health         *HealthHandler
	AllowedOrigins []string
}

func (rt Router) Handler() http.Handler {
	origins := rt.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(middleware.Metrics)

	if rt.Health != nil {
		r.Get("/health", rt.Health.Handle)
	}
	r.Handle("/metrics", middleware.Handler())

	r.Post("/api/contact", rt.Contact.Submit)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/stats", rt.Leads.Stats)
		r.Get("/leads", rt.Leads.List)

		r.Route("/leads/{id}", func(r chi.Router) {
			r.Get("/", rt.Leads.Get)
			r.Delete("/", rt.Leads.Delete)
			r.Patch("/status", rt.Leads.UpdateStatus)
			r.Patch("/amount", rt.Leads.UpdateAmount)
			r.Patch("/priority", rt.Leads.UpdatePriority)
			r.Post("/payment/qr", rt.Payments.GenerateQR)
			r.Post("/payment", rt.Payments.RecordPayment)
		})
	})

	return r
}
