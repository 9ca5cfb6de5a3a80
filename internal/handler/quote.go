package handler

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/adminsuite/pricing/internal/domain/catalog"
	"github.com/adminsuite/pricing/internal/domain/currency"
)

type quoteResponse struct {
	ProductID      string  `json:"productId"`
	CustomerID     string  `json:"customerId,omitempty"`
	BasePrice      float64 `json:"basePrice"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalPrice     float64 `json:"finalPrice"`
	Currency       string  `json:"currency"`
	Source         string  `json:"source"`
	Display        string  `json:"display"`
}

// GetQuote resolves the price a customer pays for a product, optionally
// converted into a display currency using the current rate snapshot.
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		writeError(w, r, http.StatusBadRequest, "product_id is required")
		return
	}
	customerID := r.URL.Query().Get("customer_id")
	display := currency.Code(r.URL.Query().Get("currency"))

	snapshot, err := h.rates.Snapshot(r.Context())
	if err != nil {
		// Conversion is display sugar; quote in home currency instead.
		snapshot = currency.Rates{}
	}

	q, err := h.resolver.QuoteInCurrency(r.Context(), productID, customerID, display, snapshot)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeError(w, r, http.StatusNotFound, "product not found")
			return
		}
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toQuoteResponse(*q))
}

func toQuoteResponse(q catalog.Quote) quoteResponse {
	return quoteResponse{
		ProductID:      q.ProductID,
		CustomerID:     q.CustomerID,
		BasePrice:      q.BasePrice.InexactFloat64(),
		DiscountAmount: q.DiscountAmount.InexactFloat64(),
		FinalPrice:     q.FinalPrice.InexactFloat64(),
		Currency:       string(q.Currency),
		Source:         string(q.Source),
		Display:        q.Display(),
	}
}
