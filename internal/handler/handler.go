// Package handler exposes the pricing engine over HTTP for the admin console.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adminsuite/pricing/internal/domain/catalog"
	"github.com/adminsuite/pricing/internal/rates"
)

// Handler serves the pricing API, delegating business logic to the resolver
// and repositories.
type Handler struct {
	products  catalog.Repository
	overrides catalog.OverrideRepository
	resolver  *catalog.Resolver
	rates     rates.Provider
}

// NewHandler constructs a Handler with the required dependencies.
func NewHandler(
	products catalog.Repository,
	overrides catalog.OverrideRepository,
	resolver *catalog.Resolver,
	rateProvider rates.Provider,
) *Handler {
	return &Handler{
		products:  products,
		overrides: overrides,
		resolver:  resolver,
		rates:     rateProvider,
	}
}

// Routes returns the API router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/products", h.ListProducts)
	r.Get("/products/{code}", h.GetProduct)
	r.Get("/quote", h.GetQuote)
	r.Post("/preview", h.PreviewDiscount)
	r.Get("/rates", h.GetRates)

	r.Route("/customers/{customerID}/overrides", func(r chi.Router) {
		r.Get("/", h.ListOverrides)
		r.Put("/{productID}", h.PutOverride)
		r.Delete("/{productID}", h.DeleteOverride)
	})

	return r
}
