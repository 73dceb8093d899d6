// Package itf sets up integration tests against a throwaway Postgres database.
package itf

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/iota-projects/pkg/application"
	"github.com/iota-uz/iota-projects/pkg/composables"
	"github.com/iota-uz/iota-projects/pkg/configuration"
)

type TestEnvironment struct {
	Ctx  context.Context
	Pool *pgxpool.Pool
	Tx   pgx.Tx
	App  application.Application
}

// Setup creates a database named after the test, registers mods, applies their
// migrations and opens a transaction that is rolled back on cleanup. The test is
// skipped when Postgres is unreachable.
func Setup(tb testing.TB, mods ...application.Module) *TestEnvironment {
	tb.Helper()

	var opts configuration.DatabaseOptions
	if err := env.Parse(&opts); err != nil {
		tb.Fatalf("itf: parse database options: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbName := sanitizeDBName(tb.Name())
	if err := createDB(ctx, opts, dbName); err != nil {
		tb.Skipf("itf: postgres not available: %v", err)
	}

	opts.Name = dbName
	pool, err := newPool(ctx, opts.ConnectionString())
	if err != nil {
		tb.Fatalf("itf: %v", err)
	}
	tb.Cleanup(pool.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	app := application.New(&application.ApplicationOptions{Pool: pool, Logger: logger})
	for _, m := range mods {
		if err := m.Register(app); err != nil {
			tb.Fatalf("itf: register module %s: %v", m.Name(), err)
		}
	}
	if err := app.Migrations().Run(ctx); err != nil {
		tb.Fatalf("itf: migrate: %v", err)
	}

	tx, err := pool.Begin(context.Background())
	if err != nil {
		tb.Fatalf("itf: begin: %v", err)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	txCtx := composables.WithPool(context.Background(), pool)
	txCtx = composables.WithTx(txCtx, tx)
	return &TestEnvironment{Ctx: txCtx, Pool: pool, Tx: tx, App: app}
}

// Exec runs a fixture statement inside the test transaction.
func (e *TestEnvironment) Exec(tb testing.TB, sql string, args ...any) {
	tb.Helper()
	if _, err := e.Tx.Exec(e.Ctx, sql, args...); err != nil {
		tb.Fatalf("itf: exec %q: %v", sql, err)
	}
}

func newPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}
	return pool, nil
}

func createDB(ctx context.Context, opts configuration.DatabaseOptions, name string) error {
	opts.Name = "postgres"
	conn, err := pgx.Connect(ctx, opts.ConnectionString())
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close(context.Background()) }()

	ident := pgx.Identifier{name}.Sanitize()
	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
		return err
	}
	_, err = conn.Exec(ctx, "CREATE DATABASE "+ident)
	return err
}
