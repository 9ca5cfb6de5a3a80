// Package rates supplies exchange-rate snapshots for the pricing engine.
//
// The engine itself never fetches anything: it receives whatever snapshot
// the caller passes in. This package is the collaborator that produces
// those snapshots, fetching a JSON rate feed over HTTP and caching the
// result for a configurable TTL.
package rates

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/adminsuite/pricing/internal/domain/currency"
)

// maxFeedBytes bounds how much of the rate feed response is read.
const maxFeedBytes = 1 << 20

// Provider produces exchange-rate snapshots.
type Provider interface {
	Snapshot(ctx context.Context) (currency.Rates, error)
}

// HTTPProvider fetches rates from a JSON feed of the form
//
//	{"base": "TRY", "rates": {"USD": 34.50, "EUR": 37.20}}
//
// Quotes that are non-positive, malformed, or for currencies the engine does
// not recognize are dropped from the snapshot; the conversion layer treats a
// missing quote as "rate unavailable" and passes amounts through.
type HTTPProvider struct {
	url    string
	client *http.Client
	now    func() time.Time
}

// NewHTTPProvider creates a provider that fetches from the given feed URL.
// A nil client defaults to one with a 10 second timeout.
func NewHTTPProvider(url string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPProvider{
		url:    url,
		client: client,
		now:    time.Now,
	}
}

// Snapshot fetches and decodes the rate feed.
func (p *HTTPProvider) Snapshot(ctx context.Context) (currency.Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return currency.Rates{}, errors.Wrap(err, "build rate feed request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return currency.Rates{}, errors.Wrap(err, "fetch rate feed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return currency.Rates{}, errors.Errorf("rate feed returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return currency.Rates{}, errors.Wrap(err, "read rate feed")
	}

	quotes, err := parseQuotes(body)
	if err != nil {
		return currency.Rates{}, err
	}

	return currency.NewRates(quotes, p.now()), nil
}

// parseQuotes extracts usable quotes from the feed body.
func parseQuotes(data []byte) (map[currency.Code]decimal.Decimal, error) {
	quotes := make(map[currency.Code]decimal.Decimal)

	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "rates" {
			return d.Skip()
		}
		return d.Obj(func(d *jx.Decoder, code string) error {
			num, err := d.Num()
			if err != nil {
				return errors.Wrapf(err, "quote for %q", code)
			}

			c := currency.Code(strings.ToUpper(code))
			if !currency.Supported(c) || c == currency.Home {
				return nil
			}

			v, err := decimal.NewFromString(num.String())
			if err != nil || !v.IsPositive() {
				// A broken or zero quote must not enter the snapshot:
				// downstream the absence reads as "not yet available".
				return nil
			}
			quotes[c] = v
			return nil
		})
	}); err != nil {
		return nil, errors.Wrap(err, "decode rate feed")
	}

	return quotes, nil
}
