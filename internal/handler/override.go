package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/adminsuite/pricing/internal/domain/catalog"
)

type overrideRequest struct {
	Price      float64 `json:"price"`
	Kind       string  `json:"kind,omitempty"`
	Value      float64 `json:"value,omitempty"`
	ValidFrom  *string `json:"validFrom,omitempty"`
	ValidUntil *string `json:"validUntil,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}

type overrideResponse struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customerId"`
	ProductID  string        `json:"productId"`
	Price      float64       `json:"price"`
	Discount   *ruleResponse `json:"discount,omitempty"`
	UpdatedAt  string        `json:"updatedAt"`
}

// ListOverrides returns every negotiated price for the customer.
func (h *Handler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")

	overrides, err := h.overrides.ListByCustomer(r.Context(), customerID)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	resp := make([]overrideResponse, len(overrides))
	for i, ov := range overrides {
		resp[i] = toOverrideResponse(ov)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// PutOverride creates or replaces a customer's negotiated price for a product.
func (h *Handler) PutOverride(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	productID := chi.URLParam(r, "productID")

	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if math.IsNaN(req.Price) || math.IsInf(req.Price, 0) {
		writeError(w, r, http.StatusBadRequest, "price must be a finite number")
		return
	}
	if req.Price < 0 {
		writeError(w, r, http.StatusBadRequest, "price must not be negative")
		return
	}
	if math.IsNaN(req.Value) || math.IsInf(req.Value, 0) {
		writeError(w, r, http.StatusBadRequest, "value must be a finite number")
		return
	}

	// The product must exist before a price can be negotiated for it.
	if _, err := h.products.GetByID(r.Context(), productID); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeError(w, r, http.StatusNotFound, "product not found")
			return
		}
		writeInternalError(w, r, err)
		return
	}

	rule, err := ruleFromRequest(previewRequest{
		Kind:       req.Kind,
		Value:      req.Value,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
		Active:     req.Active,
	})
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ov := catalog.Override{
		CustomerID: customerID,
		ProductID:  productID,
		Price:      decimal.NewFromFloat(req.Price),
		Discount:   rule,
		UpdatedAt:  time.Now(),
	}
	if err := h.overrides.Upsert(r.Context(), &ov); err != nil {
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toOverrideResponse(ov))
}

// DeleteOverride removes a customer's negotiated price for a product.
func (h *Handler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	productID := chi.URLParam(r, "productID")

	if err := h.overrides.Delete(r.Context(), customerID, productID); err != nil {
		if errors.Is(err, catalog.ErrOverrideNotFound) {
			writeError(w, r, http.StatusNotFound, "override not found")
			return
		}
		writeInternalError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toOverrideResponse(ov catalog.Override) overrideResponse {
	return overrideResponse{
		ID:         ov.ID,
		CustomerID: ov.CustomerID,
		ProductID:  ov.ProductID,
		Price:      ov.Price.InexactFloat64(),
		Discount:   toRuleResponse(ov.Discount),
		UpdatedAt:  ov.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
