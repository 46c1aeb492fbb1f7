package backend

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/spendwise/internal/config"
	"github.com/MrJamesThe3rd/spendwise/internal/database"
	"github.com/MrJamesThe3rd/spendwise/internal/expense"
	"github.com/MrJamesThe3rd/spendwise/internal/expense/store/dynamo"
	"github.com/MrJamesThe3rd/spendwise/internal/expense/store/memory"
	"github.com/MrJamesThe3rd/spendwise/internal/expense/store/sqlstore"
)

// Result is an opened record store. Cleanup releases its connections and is
// never nil.
type Result struct {
	Store   expense.Store
	Cleanup func() error
}

func noCleanup() error { return nil }

// Open builds the record store selected by cfg.Store.Backend, migrating or
// creating its schema first when configured to.
func Open(ctx context.Context, cfg *config.Config) (*Result, error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		return openSQL(database.Postgres, cfg.ConnectionString(), cfg.Store.Migrate, database.New)
	case config.BackendSQLite:
		return openSQL(database.SQLite, cfg.SQLite.Path, cfg.Store.Migrate, database.NewSQLite)
	case config.BackendDynamoDB:
		return openDynamo(ctx, cfg)
	case config.BackendMemory:
		slog.Info("initialized memory backend")
		return &Result{Store: memory.New(), Cleanup: noCleanup}, nil
	}

	return nil, fmt.Errorf("unsupported backend %q", cfg.Store.Backend)
}

func openSQL(dialect database.Dialect, dsn string, migrate bool, open func(string) (*sql.DB, error)) (*Result, error) {
	db, err := open(dsn)
	if err != nil {
		return nil, err
	}

	if migrate {
		if err := database.Migrate(dialect, dsn); err != nil {
			db.Close()
			return nil, err
		}
	}

	slog.Info("initialized sql backend", "dialect", dialect, "migrated", migrate)

	return &Result{Store: sqlstore.New(db, dialect), Cleanup: db.Close}, nil
}

func openDynamo(ctx context.Context, cfg *config.Config) (*Result, error) {
	client, err := dynamo.NewClient(ctx, dynamo.Config{
		Region:   cfg.Dynamo.Region,
		Table:    cfg.Dynamo.Table,
		Endpoint: cfg.Dynamo.Endpoint,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Dynamo.CreateTable {
		if err := dynamo.EnsureTable(ctx, client, cfg.Dynamo.Table); err != nil {
			return nil, err
		}
	}

	slog.Info("initialized dynamodb backend", "table", cfg.Dynamo.Table, "region", cfg.Dynamo.Region)

	return &Result{Store: dynamo.New(client, cfg.Dynamo.Table), Cleanup: noCleanup}, nil
}
