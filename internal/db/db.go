package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrEmptyDSN indicates no database DSN was provided.
var ErrEmptyDSN = errors.New("db: empty dsn")

// Open connects to the database identified by dsn. PostgreSQL DSNs
// (postgres:// URLs or key=value strings) use the postgres driver;
// anything else is treated as a SQLite path or file: URL.
func Open(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, ErrEmptyDSN
	}

	var dialector gorm.Dialector
	if isPostgresDSN(dsn) {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}

	if IsSQLite(conn) {
		if errPragma := conn.Exec("PRAGMA foreign_keys = ON").Error; errPragma != nil {
			return nil, fmt.Errorf("db: enable foreign keys: %w", errPragma)
		}
	}
	return conn, nil
}

// isPostgresDSN reports whether a DSN targets PostgreSQL.
func isPostgresDSN(dsn string) bool {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return true
	}
	return strings.Contains(dsn, "host=") || strings.Contains(dsn, "dbname=")
}

// IsUniqueViolation reports whether err stems from a unique index or
// constraint violation on any supported dialect.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
