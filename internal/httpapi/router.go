package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/sheikh-saqib/cash-drawer-planner/internal/cashier"
)

func NewRouter(c *cashier.Cashier, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(Recovery(log))
	r.Use(RequestLogger(log))

	h := NewHandler(c)

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/denominations", h.Denominations)

		r.Post("/drawer/total", h.Total)
		r.Post("/drawer/withdrawal", h.Withdrawal)

		r.Get("/records", h.ListRecords)
		r.Post("/records", h.CreateRecord)
		r.Delete("/records/{id}", h.DeleteRecord)
	})

	return r
}
