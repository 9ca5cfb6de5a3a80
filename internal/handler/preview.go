package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/adminsuite/pricing/internal/domain/currency"
	"github.com/adminsuite/pricing/internal/domain/pricing"
)

type previewRequest struct {
	BasePrice  float64 `json:"basePrice"`
	Kind       string  `json:"kind"`
	Value      float64 `json:"value"`
	ValidFrom  *string `json:"validFrom,omitempty"`
	ValidUntil *string `json:"validUntil,omitempty"`
	Active     *bool   `json:"active,omitempty"`
	AsOf       *string `json:"asOf,omitempty"`
	Currency   string  `json:"currency,omitempty"`
}

type previewResponse struct {
	BasePrice      float64 `json:"basePrice"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalPrice     float64 `json:"finalPrice"`
	Valid          bool    `json:"valid"`
	Display        string  `json:"display"`
}

// PreviewDiscount computes an ad-hoc price breakdown from a base price and a
// discount rule supplied in the request body, without touching the catalog.
// The console uses it to show the effect of a discount while an operator is
// still editing the form.
func (h *Handler) PreviewDiscount(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	// Amounts enter as floats here and nowhere else; reject garbage before
	// it becomes a decimal.
	if math.IsNaN(req.BasePrice) || math.IsInf(req.BasePrice, 0) {
		writeError(w, r, http.StatusBadRequest, "basePrice must be a finite number")
		return
	}
	if req.BasePrice < 0 {
		writeError(w, r, http.StatusBadRequest, "basePrice must not be negative")
		return
	}
	if math.IsNaN(req.Value) || math.IsInf(req.Value, 0) {
		writeError(w, r, http.StatusBadRequest, "value must be a finite number")
		return
	}

	rule, err := ruleFromRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	asOf := time.Now()
	if req.AsOf != nil {
		asOf, err = time.Parse(time.DateOnly, *req.AsOf)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "asOf must be a YYYY-MM-DD date")
			return
		}
	}

	bd, err := pricing.Apply(rule, decimal.NewFromFloat(req.BasePrice), asOf)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	code := currency.Code(req.Currency)
	writeJSON(w, r, http.StatusOK, previewResponse{
		BasePrice:      bd.BasePrice.InexactFloat64(),
		DiscountAmount: bd.DiscountAmount.InexactFloat64(),
		FinalPrice:     bd.FinalPrice.InexactFloat64(),
		Valid:          rule.ValidOn(asOf),
		Display:        currency.Format(bd.FinalPrice, code),
	})
}

// ruleFromRequest builds a pricing.Rule from the preview payload. The active
// flag defaults to true: a preview without lifecycle fields should just show
// the discounted price.
func ruleFromRequest(req previewRequest) (pricing.Rule, error) {
	rule := pricing.Rule{
		Kind:   pricing.Kind(req.Kind),
		Value:  decimal.NewFromFloat(req.Value),
		Active: true,
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}

	if req.ValidFrom != nil {
		t, err := time.Parse(time.DateOnly, *req.ValidFrom)
		if err != nil {
			return pricing.Rule{}, errors.New("validFrom must be a YYYY-MM-DD date")
		}
		rule.ValidFrom = &t
	}
	if req.ValidUntil != nil {
		t, err := time.Parse(time.DateOnly, *req.ValidUntil)
		if err != nil {
			return pricing.Rule{}, errors.New("validUntil must be a YYYY-MM-DD date")
		}
		rule.ValidUntil = &t
	}
	return rule, nil
}
