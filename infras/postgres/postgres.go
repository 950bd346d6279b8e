package postgres

//nolint:revive
import (
	"errors"
	"net"
	"net/url"
	"time"

	"tourism/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection holds the read replica and the primary. Repositories send
// queries to Read and every write or locking read to Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  Connect(cfg, "read", cfg.DB.Postgres.Read),
		Write: Connect(cfg, "write", cfg.DB.Postgres.Write),
	}
}

// Close releases both pools.
func (c *Connection) Close() error {
	var errs []error

	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// DBName applies the configured prefix, used to run several environments on one server.
func DBName(cfg *config.Config, baseName string) string {
	return cfg.DB.Postgres.Prefix + baseName
}

// DSN builds a postgres:// URL for the endpoint. Extra query parameters are
// appended as given, which lets migrate add its own options.
func DSN(cfg *config.Config, endpoint config.PostgresEndpoint, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", endpoint.SSLMode)

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + DBName(cfg, endpoint.Name),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Connect retries up to DB_POSTGRES_MAX_RETRY times and returns nil when every attempt fails.
func Connect(cfg *config.Config, name string, endpoint config.PostgresEndpoint) *sqlx.DB {
	dsn := DSN(cfg, endpoint, nil)
	logger := log.With().
		Str("name", name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", DBName(cfg, endpoint.Name)).
		Logger()

	for attempt := 1; attempt <= max(cfg.DB.Postgres.MaxRetry, 1); attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxOpenConns(cfg.DB.Postgres.MaxOpenConns)
			db.SetMaxIdleConns(cfg.DB.Postgres.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(cfg.DB.Postgres.ConnMaxLifetime) * time.Minute)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second)
	}

	logger.Error().Msgf("Giving up on database after %d attempts", max(cfg.DB.Postgres.MaxRetry, 1))

	return nil
}
