// Package migrations applies the SQL migrations shipped under migrations/.
package migrations

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"
)

// Config selects the migration source, target and direction.
type Config struct {
	Dir         string
	DatabaseURL string
	// Steps migrates by a relative number of versions when non-zero. Negative values roll back.
	Steps int
	// Down rolls back every migration. It is ignored when Steps is set.
	Down bool
}

// Run applies cfg. A database that is already at the requested version is not an error.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := sourceURL(cfg.Dir)
	if err != nil {
		return err
	}
	m, err := migrate.New(src, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Warn("migration source close error", zap.Error(srcErr))
		}
		if dbErr != nil {
			logger.Warn("migration database close error", zap.Error(dbErr))
		}
	}()

	// Stop at the next migration boundary on cancellation.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			select {
			case m.GracefulStop <- true:
			default:
			}
		case <-done:
		}
	}()

	switch {
	case cfg.Steps != 0:
		err = m.Steps(cfg.Steps)
	case cfg.Down:
		err = m.Down()
	default:
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to apply", zap.String("dir", cfg.Dir))
		return nil
	}
	if err != nil {
		return fmt.Errorf("apply migrations from %s: %w", cfg.Dir, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	logger.Info("migrations applied", zap.String("dir", cfg.Dir), zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func sourceURL(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve migrations dir: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat migrations dir %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// PostgresURL rewrites a libpq style DSN to the scheme of the pgx/v5 migrate driver.
func PostgresURL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme)
		}
	}
	return dsn
}

// ClickhouseURL enables multi statement migration files on a ClickHouse DSN.
func ClickhouseURL(dsn string) string {
	if strings.Contains(dsn, "x-multi-statement=") {
		return dsn
	}
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}
	return dsn + separator + "x-multi-statement=true"
}
