package application

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
	"github.com/sirupsen/logrus"
)

var ErrNoPool = errors.New("migrations: database pool is not configured")

type schema struct {
	module string
	fsys   *embed.FS
}

type migrationManager struct {
	pool    *pgxpool.Pool
	logger  *logrus.Logger
	schemas []schema
}

func NewMigrationManager(pool *pgxpool.Pool, logger *logrus.Logger) MigrationManager {
	return &migrationManager{pool: pool, logger: logger}
}

func (m *migrationManager) RegisterSchema(module string, migrations *embed.FS) {
	m.schemas = append(m.schemas, schema{module: module, fsys: migrations})
}

// VersionTable is the goose bookkeeping table of a module.
func VersionTable(module string) string {
	return "goose_db_version_" + strings.ReplaceAll(strings.ToLower(module), "-", "_")
}

func (m *migrationManager) Run(ctx context.Context) error {
	return m.each(ctx, m.schemas, func(p *goose.Provider, s schema) error {
		results, err := p.Up(ctx)
		for _, r := range results {
			m.logger.WithFields(logrus.Fields{
				"module":   s.module,
				"version":  r.Source.Version,
				"duration": r.Duration,
			}).Info("migration applied")
		}
		return err
	})
}

func (m *migrationManager) Rollback(ctx context.Context) error {
	reversed := make([]schema, len(m.schemas))
	for i, s := range m.schemas {
		reversed[len(m.schemas)-1-i] = s
	}
	return m.each(ctx, reversed, func(p *goose.Provider, s schema) error {
		results, err := p.DownTo(ctx, 0)
		for _, r := range results {
			m.logger.WithFields(logrus.Fields{
				"module":  s.module,
				"version": r.Source.Version,
			}).Info("migration rolled back")
		}
		return err
	})
}

func (m *migrationManager) each(ctx context.Context, schemas []schema, fn func(*goose.Provider, schema) error) error {
	if m.pool == nil {
		return ErrNoPool
	}
	db := stdlib.OpenDB(*m.pool.Config().ConnConfig)
	defer db.Close()

	for _, s := range schemas {
		p, err := newProvider(db, s)
		if err != nil {
			return err
		}
		if err := fn(p, s); err != nil {
			return fmt.Errorf("migrations for %s: %w", s.module, err)
		}
	}
	return nil
}

func newProvider(db *sql.DB, s schema) (*goose.Provider, error) {
	dir, err := migrationsDir(s.fsys)
	if err != nil {
		return nil, err
	}
	sub, err := fs.Sub(s.fsys, dir)
	if err != nil {
		return nil, err
	}
	store, err := database.NewStore(database.DialectPostgres, VersionTable(s.module))
	if err != nil {
		return nil, err
	}
	return goose.NewProvider("", db, sub, goose.WithStore(store))
}

// migrationsDir finds the directory holding the .sql files of an embedded schema.
func migrationsDir(fsys fs.FS) (string, error) {
	files, err := listFiles(fsys, ".")
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if strings.HasSuffix(f, ".sql") {
			return path.Dir(f), nil
		}
	}
	return "", fmt.Errorf("migrations: no .sql files found")
}
