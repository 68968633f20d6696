package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// DBConfig chứa cấu hình kết nối PostgreSQL và connection pool
type DBConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	DBName   string
	SSLMode  string

	MaxConns          int32         // Số lượng connections tối đa trong pool
	MinConns          int32         // Số connections tối thiểu luôn sẵn sàng
	MaxConnLifetime   time.Duration // Thời gian tối đa một connection tồn tại
	MaxConnIdleTime   time.Duration // Thời gian idle tối đa trước khi đóng connection
	HealthCheckPeriod time.Duration // Tần suất kiểm tra sức khỏe của connections

	MaxRetries     int           // Số lần retry tối đa khi kết nối thất bại
	RetryDelay     time.Duration // Delay ban đầu, doubles on each retry
	ConnectTimeout time.Duration // Timeout cho mỗi lần thử kết nối
}

type PostgresDB struct {
	Pool   *pgxpool.Pool
	Config *DBConfig
}

func NewPostgresDB(config *DBConfig) *PostgresDB {
	return &PostgresDB{
		Config: config,
	}
}

// ConnectionString builds the postgres URL; credentials are escaped
func (c *DBConfig) ConnectionString() string {
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.DBName,
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}

func (db *PostgresDB) configurePool() (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(db.Config.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	config.MaxConns = db.Config.MaxConns
	config.MinConns = db.Config.MinConns
	config.MaxConnLifetime = db.Config.MaxConnLifetime
	config.MaxConnIdleTime = db.Config.MaxConnIdleTime
	config.HealthCheckPeriod = db.Config.HealthCheckPeriod
	config.ConnConfig.ConnectTimeout = db.Config.ConnectTimeout

	return config, nil
}

// connectWithRetry retries with exponential backoff: RetryDelay, 2x, 4x...
func (db *PostgresDB) connectWithRetry(ctx context.Context, config *pgxpool.Config) (*pgxpool.Pool, error) {
	var lastErr error

	for attempt := 1; attempt <= db.Config.MaxRetries; attempt++ {
		log.Info().Int("attempt", attempt).Int("max", db.Config.MaxRetries).Msg("[DATABASE] Connection attempt")

		connectCtx, cancel := context.WithTimeout(ctx, db.Config.ConnectTimeout)
		pool, err := pgxpool.NewWithConfig(connectCtx, config)
		if err == nil {
			err = pool.Ping(connectCtx)
			if err != nil {
				pool.Close()
			}
		}
		cancel()

		if err == nil {
			log.Info().Int("attempt", attempt).Msg("[DATABASE] Successfully connected")
			return pool, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Msg("[DATABASE] Attempt failed")

		if attempt < db.Config.MaxRetries {
			delay := db.Config.RetryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", db.Config.MaxRetries, lastErr)
}

func (db *PostgresDB) Connect(ctx context.Context) error {
	log.Info().Str("host", db.Config.Host).Str("db", db.Config.DBName).Msg("[DATABASE] Initializing PostgreSQL connection...")

	config, err := db.configurePool()
	if err != nil {
		return fmt.Errorf("pool configuration failed: %w", err)
	}

	pool, err := db.connectWithRetry(ctx, config)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	db.Pool = pool
	log.Info().Msg("[DATABASE] PostgreSQL connection established successfully")
	return nil
}

// HealthCheck pings with a 5s budget and reports pool usage
func (db *PostgresDB) HealthCheck(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(healthCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	stats := db.Pool.Stat()
	log.Debug().
		Int32("total", stats.TotalConns()).
		Int32("idle", stats.IdleConns()).
		Int32("acquired", stats.AcquiredConns()).
		Msg("[DATABASE] Health check passed")

	return nil
}

// Close is safe to call multiple times
func (db *PostgresDB) Close() {
	if db.Pool == nil {
		return
	}

	log.Info().Msg("[DATABASE] Closing database connection pool...")
	db.Pool.Close()
	db.Pool = nil
}
