// Package surreal wires the application to its SurrealDB backend. Repos for
// the individual record kinds live in subpackages; this package owns the
// connection and the error mapping shared by all of them.
package surreal

import (
	"context"
	"fmt"

	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/jaapghar/jaapghar-backend/internal/config"
)

// Connect dials SurrealDB per SurrealConfig, authenticates, and selects the
// configured namespace and database. It pings once for fail-fast validation.
func Connect(ctx context.Context, cfg config.SurrealConfig) (*surrealdb.DB, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("surreal: dial %s: %w", cfg.URL, err)
	}

	if _, err := db.SignIn(ctx, surrealdb.Auth{
		Username: cfg.Username,
		Password: cfg.Password,
	}); err != nil {
		db.Close(ctx) //nolint:errcheck
		return nil, fmt.Errorf("surreal: sign in: %w", err)
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		db.Close(ctx) //nolint:errcheck
		return nil, fmt.Errorf("surreal: use %s/%s: %w", cfg.Namespace, cfg.Database, err)
	}

	if err := Ping(ctx, db); err != nil {
		db.Close(ctx) //nolint:errcheck
		return nil, err
	}

	return db, nil
}

// Ping runs a trivial statement to verify the connection is usable.
func Ping(ctx context.Context, db *surrealdb.DB) error {
	if _, err := surrealdb.Query[int](ctx, db, "RETURN 1", nil); err != nil {
		return fmt.Errorf("surreal: ping: %w", err)
	}
	return nil
}

// Pinger adapts a DB handle to the health endpoint's interface.
type Pinger struct {
	DB *surrealdb.DB
}

func (p Pinger) Ping(ctx context.Context) error {
	return Ping(ctx, p.DB)
}
