package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"applyapi/internal/config"
)

var sqlOpen = sql.Open

const defaultConnectTimeout = 5 * time.Second

// BuildPostgresDSN renders the config as a postgres:// URL for the pgx driver.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	var missing []string
	for name, v := range map[string]string{"host": c.Host, "port": c.Port, "user": c.User, "name": c.Name} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("invalid database config: missing %s", strings.Join(missing, ", "))
	}

	u := &url.URL{Scheme: "postgres", Host: net.JoinHostPort(c.Host, c.Port), Path: c.Name}
	u.User = url.User(c.User)
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}

	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	if c.AppName != "" {
		q.Set("application_name", c.AppName)
	}
	if c.ConnectTimeoutSec > 0 {
		q.Set("connect_timeout", strconv.Itoa(c.ConnectTimeoutSec))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// NewPostgres opens the traced pgx pool shared by the application, notification, job
// and user repositories, and fails unless the server answers a ping within the connect timeout.
func NewPostgres(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL, semconv.DBName(c.Name)),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("register traced pgx driver: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	applyPool(db, c)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout(c))
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping %s: %w", net.JoinHostPort(c.Host, c.Port), err)
	}
	return db, nil
}

// applyPool leaves database/sql defaults in place for zero values.
func applyPool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		idle := c.MaxIdleConns
		if c.MaxOpenConns > 0 && idle > c.MaxOpenConns {
			idle = c.MaxOpenConns
		}
		db.SetMaxIdleConns(idle)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
	if c.ConnMaxIdleTimeSec > 0 {
		db.SetConnMaxIdleTime(time.Duration(c.ConnMaxIdleTimeSec) * time.Second)
	}
}

func connectTimeout(c config.DatabaseConfig) time.Duration {
	if c.ConnectTimeoutSec > 0 {
		return time.Duration(c.ConnectTimeoutSec) * time.Second
	}
	return defaultConnectTimeout
}
