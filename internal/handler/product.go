package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/adminsuite/pricing/internal/domain/catalog"
	"github.com/adminsuite/pricing/internal/domain/currency"
	"github.com/adminsuite/pricing/internal/domain/pricing"
)

type productResponse struct {
	ID           string        `json:"id"`
	Code         string        `json:"code"`
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	Price        float64       `json:"price"`
	Currency     string        `json:"currency"`
	Discount     *ruleResponse `json:"discount,omitempty"`
	DisplayPrice string        `json:"displayPrice"`
}

type ruleResponse struct {
	Kind       string  `json:"kind"`
	Value      float64 `json:"value"`
	ValidFrom  *string `json:"validFrom,omitempty"`
	ValidUntil *string `json:"validUntil,omitempty"`
	Active     bool    `json:"active"`
}

// ListProducts returns the product catalog with list prices.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// GetProduct returns a single product looked up by its catalog code.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	p, err := h.products.GetByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeError(w, r, http.StatusNotFound, "product not found")
			return
		}
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toProductResponse(*p))
}

func toProductResponse(p catalog.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Category:     p.Category,
		Price:        p.Price.InexactFloat64(),
		Currency:     string(p.Currency),
		Discount:     toRuleResponse(p.Discount),
		DisplayPrice: currency.Format(p.Price, p.Currency),
	}
}

func toRuleResponse(rule pricing.Rule) *ruleResponse {
	if rule.Kind == "" || rule.Kind == pricing.KindNone {
		return nil
	}
	resp := &ruleResponse{
		Kind:   string(rule.Kind),
		Value:  rule.Value.InexactFloat64(),
		Active: rule.Active,
	}
	if rule.ValidFrom != nil {
		s := rule.ValidFrom.Format(time.DateOnly)
		resp.ValidFrom = &s
	}
	if rule.ValidUntil != nil {
		s := rule.ValidUntil.Format(time.DateOnly)
		resp.ValidUntil = &s
	}
	return resp
}
