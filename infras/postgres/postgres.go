package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"rentro/config"
	"rentro/shared/constant"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	defaultSSLMode            = "disable"
)

// Connection splits traffic between a read replica and the primary.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Target describes one side of the connection pair.
type Target struct {
	Name     string
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
	Timezone string
}

func New(cfg *config.Config) (*Connection, error) {
	pg := cfg.DB.Postgres

	write, err := Connect(WriteTarget(cfg), pg.MaxRetry, pg.RetryWaitTime)
	if err != nil {
		return nil, err
	}

	read, err := Connect(ReadTarget(cfg), pg.MaxRetry, pg.RetryWaitTime)
	if err != nil {
		_ = write.Close()

		return nil, err
	}

	return &Connection{Read: read, Write: write}, nil
}

// WriteTarget is the primary; migrations run against it.
func WriteTarget(cfg *config.Config) Target {
	w := cfg.DB.Postgres.Write

	return Target{
		Name:     "write",
		Username: w.Username,
		Password: w.Password,
		Host:     w.Host,
		Port:     w.Port,
		DBName:   dbName(cfg, w.Name),
		SSLMode:  w.SSLMode,
		Timezone: w.Timezone,
	}
}

func ReadTarget(cfg *config.Config) Target {
	r := cfg.DB.Postgres.Read

	return Target{
		Name:     "read",
		Username: r.Username,
		Password: r.Password,
		Host:     r.Host,
		Port:     r.Port,
		DBName:   dbName(cfg, r.Name),
		SSLMode:  r.SSLMode,
		Timezone: r.Timezone,
	}
}

// Close releases both pools.
func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

func dbName(cfg *config.Config, baseName string) string {
	return cfg.DB.Postgres.Prefix + baseName
}

// DSN renders the lib/pq connection URL for t.
func DSN(t Target) string {
	sslMode := t.SSLMode
	if sslMode == "" {
		sslMode = defaultSSLMode
	}

	query := url.Values{}
	query.Set("sslmode", sslMode)

	if t.Timezone != "" {
		query.Set("timezone", t.Timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(t.Username, t.Password),
		Host:     net.JoinHostPort(t.Host, t.Port),
		Path:     "/" + t.DBName,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Connect dials t, retrying up to maxRetry times with waitTime seconds between attempts.
func Connect(t Target, maxRetry, waitTime int) (*sqlx.DB, error) {
	var lastErr error

	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", DSN(t))
		if err == nil {
			log.Info().
				Str("name", t.Name).
				Str("host", t.Host).
				Str("port", t.Port).
				Str("dbName", t.DBName).
				Msg("Connected to database")

			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB, nil
		}

		lastErr = err

		log.Error().
			Err(err).
			Str("name", t.Name).
			Str("host", t.Host).
			Str("port", t.Port).
			Str("dbName", t.DBName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil, fmt.Errorf("failed connecting to %s database: %w", t.Name, lastErr)
}

// IsUniqueViolation reports whether err is a Postgres unique constraint failure.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
}
