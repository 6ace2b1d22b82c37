package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// MigrationKind is the direction of a migration. Only MigrationUp is ever
// applied: the schema evolves forward-only.
type MigrationKind int

const (
	MigrationUp MigrationKind = iota
	MigrationDown
)

func (k MigrationKind) String() string {
	switch k {
	case MigrationUp:
		return "up"
	case MigrationDown:
		return "down"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Migration is one versioned, one-way schema change. Description is
// documentation only.
type Migration struct {
	Version     int
	Description string
	SQL         string
	Kind        MigrationKind
}

// AppliedMigration is a row of the schema_migrations table.
type AppliedMigration struct {
	Version     int       `json:"version"`
	Description string    `json:"description"`
	AppliedAt   time.Time `json:"appliedAt"`
}

// ErrBadMigration reports a malformed migration registry.
var ErrBadMigration = errors.New("bad migration")

// validateMigrations checks that versions run 1..n with no gaps, every
// migration is an Up migration and no batch is empty.
func validateMigrations(list []Migration) error {
	for i, m := range list {
		if m.Version != i+1 {
			return fmt.Errorf("%w: position %d has version %d, want %d", ErrBadMigration, i, m.Version, i+1)
		}
		if m.Kind != MigrationUp {
			return fmt.Errorf("%w: version %d is a %s migration", ErrBadMigration, m.Version, m.Kind)
		}
		if strings.TrimSpace(m.SQL) == "" {
			return fmt.Errorf("%w: version %d has no SQL", ErrBadMigration, m.Version)
		}
	}
	return nil
}

// migrate applies every migration in list whose version is not yet recorded
// in schema_migrations, in ascending order. Each one runs in its own
// transaction together with its bookkeeping, so a failure leaves the database
// at the last successfully applied version.
func (s *Store) migrate(ctx context.Context, list []Migration) error {
	if err := validateMigrations(list); err != nil {
		return err
	}
	if err := s.ensureMigrationsTable(ctx); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	applied, err := s.appliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("read applied migrations: %w", err)
	}

	for _, m := range list {
		if applied[m.Version] {
			slog.Debug("migration already applied", "version", m.Version)
			continue
		}
		if err := s.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Description, err)
		}
		slog.Info("migration applied", "version", m.Version, "description", m.Description)
	}
	return nil
}

func (s *Store) ensureMigrationsTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		)`)
	return err
}

func (s *Store) appliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func (s *Store) applyMigration(ctx context.Context, m Migration) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("execute sql: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, description) VALUES (?, ?)`,
			m.Version, m.Description,
		); err != nil {
			return fmt.Errorf("record migration: %w", err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
		return nil
	})
}

// SchemaVersion returns the highest applied migration version, 0 for a
// fresh database.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// AppliedMigrations lists the schema_migrations rows in version order.
func (s *Store) AppliedMigrations(ctx context.Context) ([]AppliedMigration, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version, description, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	defer rows.Close()

	var out []AppliedMigration
	for rows.Next() {
		var m AppliedMigration
		var appliedAt string
		if err := rows.Scan(&m.Version, &m.Description, &appliedAt); err != nil {
			return nil, err
		}
		m.AppliedAt, _ = time.Parse(time.RFC3339, appliedAt)
		out = append(out, m)
	}
	return out, rows.Err()
}

// PendingMigrations returns the registered versions not yet applied.
func (s *Store) PendingMigrations(ctx context.Context) ([]Migration, error) {
	applied, err := s.appliedVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}
	var pending []Migration
	for _, m := range Migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	return pending, nil
}
