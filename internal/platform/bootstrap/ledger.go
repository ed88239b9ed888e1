// Package bootstrap builds a ready ledger from configuration: in memory from
// the seed, or restored from Postgres with write-through enabled.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/school_ledger/internal/adapters/database/pgsql"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/core/services"
	"github.com/SscSPs/school_ledger/internal/middleware"
	"github.com/SscSPs/school_ledger/internal/platform/config"
	"github.com/SscSPs/school_ledger/internal/seed"
	"github.com/SscSPs/school_ledger/pkg/database"
)

// Ledger is an opened ledger and whatever must be released with it.
type Ledger struct {
	Services *portssvc.ServiceContainer
	pool     *pgxpool.Pool
	logger   *slog.Logger
}

// Close releases the database pool, if any.
func (l *Ledger) Close() {
	if l.pool != nil {
		database.ClosePgxPool(l.pool, l.logger)
	}
}

// Persistent reports whether writes go through to Postgres.
func (l *Ledger) Persistent() bool {
	return l.pool != nil
}

// Open loads the seed named by cfg and builds the ledger. With a database
// URL it migrates the schema, then restores the stored state or seeds an
// empty database through the store.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Ledger, error) {
	ctx = middleware.WithLogger(ctx, logger)

	f, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		ledger := services.NewLedgerService(services.WithPostingAccounts(f.Posting))
		if err := seed.Apply(ctx, ledger, f); err != nil {
			return nil, fmt.Errorf("failed to apply seed: %w", err)
		}
		logger.Info("Ledger seeded in memory", slog.Int("accounts", len(f.Accounts)), slog.Int("journals", len(f.Journals)))
		return &Ledger{Services: services.NewServiceContainer(ledger), logger: logger}, nil
	}

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return nil, err
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}

	l := &Ledger{pool: pool, logger: logger}
	container, err := restoreOrSeed(ctx, pgsql.NewLedgerStore(pool), f, logger)
	if err != nil {
		l.Close()
		return nil, err
	}
	l.Services = container
	return l, nil
}

func restoreOrSeed(ctx context.Context, store portsrepo.LedgerStore, f *seed.File, logger *slog.Logger) (*portssvc.ServiceContainer, error) {
	snapshot, err := store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	ledger := services.NewLedgerService(services.WithPostingAccounts(f.Posting), services.WithStore(store))
	if snapshot.IsEmpty() {
		if err := seed.Apply(ctx, ledger, f); err != nil {
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
		logger.Info("Empty database seeded", slog.Int("accounts", len(f.Accounts)), slog.Int("journals", len(f.Journals)))
	} else {
		if err := ledger.Restore(ctx, snapshot); err != nil {
			return nil, fmt.Errorf("failed to restore ledger: %w", err)
		}
		logger.Info("Ledger restored", slog.Int("accounts", len(snapshot.Accounts)), slog.Int("journals", len(snapshot.Journals)))
	}
	return services.NewServiceContainer(ledger), nil
}
