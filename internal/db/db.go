package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

var ErrUnsupportedStore = errors.New("unsupported store URL")

// sqlitePragmas are embedded in the DSN so every pooled connection gets them.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(ON)",
	"busy_timeout(30000)",
	"synchronous(NORMAL)",
}

// ParseStoreURL maps a store URL to a driver name and DSN.
//
//	sqlite:./data/repurpose.db, sqlite:///abs/path.db, file:./x.db -> sqlite
//	postgres://..., postgresql://...                            -> pgx
//
// For PostgreSQL the token becomes the password unless the URL carries one.
func ParseStoreURL(raw, token string) (driver, dsn string, err error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", fmt.Errorf("parse store URL: %w", err)
		}
		if token != "" && u.User != nil {
			if _, hasPassword := u.User.Password(); !hasPassword {
				u.User = url.UserPassword(u.User.Username(), token)
			}
		}
		return DriverPostgres, u.String(), nil
	case strings.HasPrefix(raw, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(raw, "sqlite://"), nil
	case strings.HasPrefix(raw, "sqlite:"):
		return DriverSQLite, strings.TrimPrefix(raw, "sqlite:"), nil
	case strings.HasPrefix(raw, "file:"):
		return DriverSQLite, strings.TrimPrefix(raw, "file:"), nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedStore, raw)
	}
}

// BuildDSN returns a modernc sqlite DSN for path with pragmas applied per connection.
func BuildDSN(path string) string {
	params := make([]string, 0, len(sqlitePragmas))
	for _, p := range sqlitePragmas {
		params = append(params, "_pragma="+url.QueryEscape(p))
	}
	return "file:" + path + "?" + strings.Join(params, "&")
}

// Open connects to the store and applies migrations. For sqlite dsn is a file path.
func Open(driver, dsn string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch driver {
	case DriverSQLite:
		dir := filepath.Dir(dsn)
		if dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		db, err = sql.Open(DriverSQLite, BuildDSN(dsn))
	case DriverPostgres:
		db, err = sql.Open(DriverPostgres, dsn)
	default:
		return nil, fmt.Errorf("%w: driver %q", ErrUnsupportedStore, driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
