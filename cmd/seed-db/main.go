// Command seed-db loads catalog products and customer price overrides from
// JSON files into PostgreSQL. It is intended for development and demo
// environments.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/adminsuite/pricing/internal/repository"
)

type ruleJSON struct {
	Kind       string          `json:"kind"`
	Value      decimal.Decimal `json:"value"`
	ValidFrom  string          `json:"validFrom"`
	ValidUntil string          `json:"validUntil"`
	Active     bool            `json:"active"`
}

type productJSON struct {
	ID       string          `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Discount *ruleJSON       `json:"discount"`
}

type overrideJSON struct {
	CustomerID string          `json:"customerId"`
	ProductID  string          `json:"productId"`
	Price      decimal.Decimal `json:"price"`
	Discount   *ruleJSON       `json:"discount"`
}

func main() {
	var (
		databaseURL   string
		productsFile  string
		overridesFile string
		workers       int
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "db/seed/products.json", "path to products JSON file")
	flag.StringVar(&overridesFile, "overrides-file", "", "path to overrides JSON file (optional)")
	flag.IntVar(&workers, "workers", 4, "number of concurrent upsert workers")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile, overridesFile, workers); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile, overridesFile string, workers int) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedProducts(ctx, pool, productsFile, workers); err != nil {
		return errors.Wrap(err, "seed products")
	}

	if overridesFile != "" {
		if err := seedOverrides(ctx, pool, overridesFile, workers); err != nil {
			return errors.Wrap(err, "seed overrides")
		}
	}

	return nil
}

const upsertProductSQL = `
INSERT INTO products (id, code, name, category, price, currency,
	discount_kind, discount_value, discount_valid_from, discount_valid_until, discount_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET
	code = EXCLUDED.code,
	name = EXCLUDED.name,
	category = EXCLUDED.category,
	price = EXCLUDED.price,
	currency = EXCLUDED.currency,
	discount_kind = EXCLUDED.discount_kind,
	discount_value = EXCLUDED.discount_value,
	discount_valid_from = EXCLUDED.discount_valid_from,
	discount_valid_until = EXCLUDED.discount_valid_until,
	discount_active = EXCLUDED.discount_active
`

func seedProducts(ctx context.Context, pool *pgxpool.Pool, productsFile string, workers int) error {
	slog.Info("reading products file", slog.String("path", productsFile))

	data, err := os.ReadFile(productsFile)
	if err != nil {
		return errors.Wrap(err, "read products file")
	}

	var products []productJSON
	if err := json.Unmarshal(data, &products); err != nil {
		return errors.Wrap(err, "parse products JSON")
	}

	slog.Info("upserting products", slog.Int("count", len(products)))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, p := range products {
		g.Go(func() error {
			kind, value, from, until, active, err := ruleColumns(p.Discount)
			if err != nil {
				return errors.Wrapf(err, "product %s discount", p.ID)
			}

			if _, err := pool.Exec(ctx, upsertProductSQL,
				p.ID, p.Code, p.Name, p.Category, p.Price, currencyOrHome(p.Currency),
				kind, value, from, until, active,
			); err != nil {
				return errors.Wrapf(err, "upsert product %s", p.ID)
			}

			slog.Info("upserted product", slog.String("id", p.ID), slog.String("name", p.Name))
			return nil
		})
	}
	return g.Wait()
}

const upsertSeedOverrideSQL = `
INSERT INTO price_overrides (id, customer_id, product_id, price,
	discount_kind, discount_value, discount_valid_from, discount_valid_until, discount_active, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
ON CONFLICT (customer_id, product_id) DO UPDATE SET
	price = EXCLUDED.price,
	discount_kind = EXCLUDED.discount_kind,
	discount_value = EXCLUDED.discount_value,
	discount_valid_from = EXCLUDED.discount_valid_from,
	discount_valid_until = EXCLUDED.discount_valid_until,
	discount_active = EXCLUDED.discount_active,
	updated_at = now()
`

func seedOverrides(ctx context.Context, pool *pgxpool.Pool, overridesFile string, workers int) error {
	slog.Info("reading overrides file", slog.String("path", overridesFile))

	data, err := os.ReadFile(overridesFile)
	if err != nil {
		return errors.Wrap(err, "read overrides file")
	}

	var overrides []overrideJSON
	if err := json.Unmarshal(data, &overrides); err != nil {
		return errors.Wrap(err, "parse overrides JSON")
	}

	slog.Info("upserting overrides", slog.Int("count", len(overrides)))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, o := range overrides {
		g.Go(func() error {
			kind, value, from, until, active, err := ruleColumns(o.Discount)
			if err != nil {
				return errors.Wrapf(err, "override %s/%s discount", o.CustomerID, o.ProductID)
			}

			if _, err := pool.Exec(ctx, upsertSeedOverrideSQL,
				uuid.New(), o.CustomerID, o.ProductID, o.Price,
				kind, value, from, until, active,
			); err != nil {
				return errors.Wrapf(err, "upsert override %s/%s", o.CustomerID, o.ProductID)
			}

			slog.Info("upserted override",
				slog.String("customer", o.CustomerID), slog.String("product", o.ProductID))
			return nil
		})
	}
	return g.Wait()
}

// ruleColumns maps an optional discount rule from the seed file onto the
// discount columns. A missing rule seeds as "none".
func ruleColumns(r *ruleJSON) (kind string, value decimal.Decimal, from, until *time.Time, active bool, err error) {
	if r == nil {
		return "none", decimal.Zero, nil, nil, false, nil
	}
	if from, err = parseDate(r.ValidFrom); err != nil {
		return "", decimal.Zero, nil, nil, false, err
	}
	if until, err = parseDate(r.ValidUntil); err != nil {
		return "", decimal.Zero, nil, nil, false, err
	}
	return r.Kind, r.Value, from, until, r.Active, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, errors.Wrapf(err, "parse date %q", s)
	}
	return &t, nil
}

func currencyOrHome(code string) string {
	if code == "" {
		return "TRY"
	}
	return code
}
