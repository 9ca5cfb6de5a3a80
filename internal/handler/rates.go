package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adminsuite/pricing/internal/domain/currency"
)

type ratesResponse struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt *string            `json:"fetchedAt,omitempty"`
	Samples   map[string]string  `json:"samples"`
}

// GetRates returns the current exchange-rate snapshot together with a
// formatted sample per currency, so the console can render a rate banner
// without duplicating the formatting rules.
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.rates.Snapshot(r.Context())
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	sampleAmount := decimal.NewFromInt(100)
	resp := ratesResponse{
		Base:    string(currency.Home),
		Rates:   make(map[string]float64, len(snapshot.Quotes)),
		Samples: make(map[string]string, len(currency.Foreign)),
	}
	for _, code := range currency.Foreign {
		if rate := snapshot.Rate(code); rate.IsPositive() {
			resp.Rates[string(code)] = rate.InexactFloat64()
		}
		converted := currency.FromHome(sampleAmount, code, snapshot)
		resp.Samples[string(code)] = currency.Format(converted.Round(2), sampleCurrency(code, snapshot))
	}
	if !snapshot.FetchedAt.IsZero() {
		s := snapshot.FetchedAt.UTC().Format(time.RFC3339)
		resp.FetchedAt = &s
	}

	writeJSON(w, r, http.StatusOK, resp)
}

// sampleCurrency labels a converted sample: when the rate is unavailable the
// amount stayed in the home currency and must be formatted as such.
func sampleCurrency(code currency.Code, snapshot currency.Rates) currency.Code {
	if snapshot.Rate(code).IsPositive() {
		return code
	}
	return currency.Home
}
