package postgres

//nolint:revive
import (
	"errors"
	"net"
	"net/url"
	"time"

	"hotel/config"
	"hotel/shared/constant"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
)

// Connection holds separate pools so reads can be pointed at a replica.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New opens the read and write pools. When rooms and bookings live in the key-value store
// no database is dialed and both pools stay nil.
func New(cfg *config.Config) *Connection {
	if cfg.Storage.Driver != constant.StorageDriverPostgres {
		log.Info().Str("driver", cfg.Storage.Driver).Msg("Postgres disabled for this storage driver")

		return &Connection{}
	}

	conn := &Connection{
		Read:  connect(cfg, "read", cfg.DB.Postgres.Read),
		Write: connect(cfg, "write", cfg.DB.Postgres.Write),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Msg("Unable to reach the database after all retries")
	}

	return conn
}

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

// DSN renders node as a postgres:// URL for database. extra is merged into the query string.
func DSN(node config.PostgresNode, database string, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", node.SSLMode)

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     "/" + database,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// DatabaseName applies the environment prefix, e.g. "dev_" + "hotel".
func DatabaseName(cfg *config.Config, node config.PostgresNode) string {
	return cfg.DB.Postgres.Prefix + node.Name
}

// connect dials node, retrying MAX_RETRY times RETRY_WAIT_TIME seconds apart. It returns nil
// when every attempt fails.
func connect(cfg *config.Config, role string, node config.PostgresNode) *sqlx.DB {
	database := DatabaseName(cfg, node)
	dsn := DSN(node, database, nil)
	wait := time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second

	for attempt := 1; attempt <= max(cfg.DB.Postgres.MaxRetry, 1); attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)

			log.Info().Str("role", role).Str("host", node.Host).Str("database", database).Msg("Connected to database")

			return db
		}

		log.Error().
			Err(err).
			Str("role", role).
			Str("host", node.Host).
			Int("attempt", attempt).
			Msg("Failed connecting to database, retrying")

		time.Sleep(wait)
	}

	return nil
}
