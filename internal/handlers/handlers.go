package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shadownumbers/numrent/internal/config"
	adminhandlers "github.com/shadownumbers/numrent/internal/handlers/admin"
	cataloghandlers "github.com/shadownumbers/numrent/internal/handlers/catalog"
	paymenthandlers "github.com/shadownumbers/numrent/internal/handlers/payments"
	rentalhandlers "github.com/shadownumbers/numrent/internal/handlers/rentals"
	"github.com/shadownumbers/numrent/internal/service"
	"github.com/shadownumbers/numrent/pkg/identity"
)

type CatalogHandler interface {
	GetNumbers(w http.ResponseWriter, r *http.Request)
	GetNumber(w http.ResponseWriter, r *http.Request)
}

type RentalHandler interface {
	GetRentals(w http.ResponseWriter, r *http.Request)
	Extend(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	CreateSelection(w http.ResponseWriter, r *http.Request)
	DeleteSelection(w http.ResponseWriter, r *http.Request)
	CreateInvoice(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ForceRental(w http.ResponseWriter, r *http.Request)
	CreatePromo(w http.ResponseWriter, r *http.Request)
	ListPromos(w http.ResponseWriter, r *http.Request)
	DeactivatePromo(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	CatalogHandler CatalogHandler
	RentalHandler  RentalHandler
	PaymentHandler PaymentHandler
	AdminHandler   AdminHandler

	registrar identity.Registrar
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		CatalogHandler: cataloghandlers.New(s.InventoryService),
		RentalHandler:  rentalhandlers.New(s.RentalService),
		PaymentHandler: paymenthandlers.New(s.InventoryService, s.SessionService, s.PromoService, s.PaymentService),
		AdminHandler:   adminhandlers.New(s.RentalService, s.PromoService),
		registrar:      s.UserService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router, cfg *config.Config) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Route("/api", func(r chi.Router) {
		r.Use(identity.Middleware(h.registrar))

		r.Route("/numbers", func(r chi.Router) {
			r.Get("/", h.CatalogHandler.GetNumbers)
			r.Get("/item", h.CatalogHandler.GetNumber)
		})
		r.Route("/selections", func(r chi.Router) {
			r.Post("/", h.PaymentHandler.CreateSelection)
			r.Delete("/", h.PaymentHandler.DeleteSelection)
		})
		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", h.PaymentHandler.CreateInvoice)
			r.Post("/confirm", h.PaymentHandler.Confirm)
		})
		r.Route("/rentals", func(r chi.Router) {
			r.Get("/", h.RentalHandler.GetRentals)
			r.Post("/extend", h.RentalHandler.Extend)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(identity.OwnerOnly(cfg.OwnerID))
			r.Post("/rentals", h.AdminHandler.ForceRental)
			r.Route("/promos", func(r chi.Router) {
				r.Post("/", h.AdminHandler.CreatePromo)
				r.Get("/", h.AdminHandler.ListPromos)
				r.Delete("/{code}", h.AdminHandler.DeactivatePromo)
			})
		})
	})

	return r
}
