// Package database is the relational store. It owns the single open handle, applies the
// embedded schema every time a store is opened, and remembers which store was used last.
//
// Two backends are supported:
//   - a SQLite file (the default), driven by the pure-Go modernc driver
//   - a PostgreSQL database, selected by giving a postgres:// URL as the store location
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	// The migrate package reads and applies versioned SQL migration files.
	"github.com/golang-migrate/migrate/v4"
	// Registers the postgres:// and postgresql:// URL schemes with migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	// iofs lets migrate read the .sql files embedded into the binary.
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/trentd187/statteam/internal/database/migrations"
	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// Store wraps the one open database handle. Every component reaches the database through
// it, and Switch is the only way the handle changes.
type Store struct {
	mu              sync.Mutex
	db              *gorm.DB
	location        string
	pointerFile     string
	defaultLocation string
}

// Open resolves the store to use from the pointer file (falling back to defaultLocation),
// opens it and applies the schema. The pointer file is not rewritten here.
func Open(ctx context.Context, pointerFile, defaultLocation string) (*Store, error) {
	store := &Store{
		pointerFile:     pointerFile,
		defaultLocation: defaultLocation,
	}

	location := LastStore(pointerFile, defaultLocation)

	db, err := connect(ctx, location)
	if err != nil {
		return nil, err
	}

	store.db = db
	store.location = location

	slog.Info("Opened store", slog.String("location", location))

	return store, nil
}

// DB returns the current handle bound to ctx.
func (s *Store) DB(ctx context.Context) (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, errs.ErrStoreClosed
	}

	return s.db.WithContext(ctx), nil
}

// Transaction runs fn inside a single database transaction. Any error returned by fn rolls
// back every write fn made. fn must only use the tx it is given.
func (s *Store) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db, err := s.DB(ctx)
	if err != nil {
		return err
	}

	return db.Transaction(fn)
}

// Location is the path or URL of the open store.
func (s *Store) Location() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.location
}

// ApplySchema creates any missing tables and indexes on the open store. It is safe to call
// any number of times.
func (s *Store) ApplySchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return errs.ErrStoreClosed
	}

	if isPostgres(s.location) {
		return applyPostgresSchema(s.location)
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrResource, err)
	}

	return applySQLiteSchema(ctx, sqlDB)
}

// Switch closes the current handle, opens location (creating an empty SQLite store when the
// file does not exist yet), applies the schema and records location in the pointer file.
//
// When location cannot be opened the previous store is reopened and an errs.ErrResource
// error is returned.
func (s *Store) Switch(ctx context.Context, location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return errs.ErrStorePathRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.location
	if err := s.closeLocked(); err != nil {
		slog.Warn("Failed to close store cleanly", slog.String("location", previous), log.ErrAttr(err))
	}

	db, errConnect := connect(ctx, location)
	if errConnect != nil {
		slog.Error("Failed to switch store", slog.String("location", location), log.ErrAttr(errConnect))

		if previous != "" {
			prevDB, errPrev := connect(ctx, previous)
			if errPrev != nil {
				slog.Error("Failed to reopen previous store", slog.String("location", previous), log.ErrAttr(errPrev))
			} else {
				s.db = prevDB
				s.location = previous
			}
		}

		return errConnect
	}

	s.db = db
	s.location = location

	if err := SaveLastStore(s.pointerFile, location); err != nil {
		slog.Warn("Failed to remember store", slog.String("pointer_file", s.pointerFile), log.ErrAttr(err))
	}

	slog.Info("Switched store", slog.String("from", previous), slog.String("to", location))

	return nil
}

// Close releases the handle. The Store is unusable until the next successful Switch.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closeLocked()
}

func (s *Store) closeLocked() error {
	if s.db == nil {
		return nil
	}

	sqlDB, err := s.db.DB()
	s.db = nil
	s.location = ""

	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func isPostgres(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

// connect opens location and applies the schema. Every failure is an errs.ErrResource.
func connect(ctx context.Context, location string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	if isPostgres(location) {
		db, err = connectPostgres(location)
	} else {
		db, err = connectSQLite(ctx, location)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", errs.ErrResource, location, err)
	}

	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
}

// sqliteDSN turns foreign keys on for every connection; cascades depend on it.
func sqliteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func connectSQLite(ctx context.Context, path string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, err
	}

	// One connection: the store is a single handle with one writer.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()

		return nil, err
	}

	if err := applySQLiteSchema(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()

		return nil, err
	}

	db, err := gorm.Open(sqlite.New(sqlite.Config{Conn: sqlDB}), gormConfig())
	if err != nil {
		_ = sqlDB.Close()

		return nil, err
	}

	return db, nil
}

// connectPostgres applies the schema over a short-lived migrate connection that is closed
// before the store handle is opened.
func connectPostgres(dsn string) (*gorm.DB, error) {
	if err := applyPostgresSchema(dsn); err != nil {
		return nil, err
	}

	return gorm.Open(postgres.Open(dsn), gormConfig())
}

func applySQLiteSchema(ctx context.Context, sqlDB *sql.DB) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := iofs.New(migrations.FS, "sqlite")
	if err != nil {
		return err
	}
	// Only the source is closed: closing the migrate instance would close sqlDB too.
	defer src.Close()

	driver, err := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return err
	}

	return up(m)
}

func applyPostgresSchema(dsn string) error {
	src, err := iofs.New(migrations.FS, "postgres")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return err
	}

	defer func() {
		if errSrc, errDB := m.Close(); errSrc != nil || errDB != nil {
			slog.Warn("Failed to close migrator", slog.Any("source", errSrc), slog.Any("database", errDB))
		}
	}()

	return up(m)
}

// up applies pending migrations. migrate.ErrNoChange means the schema is already current.
func up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply schema: %w", err)
	}

	return nil
}
